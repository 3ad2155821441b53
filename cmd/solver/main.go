package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cryptarithm/internal/solver"
)

func main() {
	timeout := flag.Duration("timeout", solver.DefaultTimeout, "Upper bound on search time")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: an equation argument is required, e.g. \"SEND+MORE=MONEY\"\n\n")
		flag.Usage()
		os.Exit(1)
	}
	puzzle := strings.Join(flag.Args(), " ")

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	s := solver.New(solver.Options{Timeout: *timeout})

	start := time.Now()
	mapping, err := s.Solve(context.Background(), puzzle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(mapping) == 0 {
		fmt.Printf("No solution found for %q (searched for %s)\n", puzzle, time.Since(start).Round(time.Millisecond))
		os.Exit(1)
	}

	letters := make([]rune, 0, len(mapping))
	for letter := range mapping {
		letters = append(letters, letter)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	fmt.Printf("Solved %q in %s\n", puzzle, time.Since(start).Round(time.Millisecond))
	for _, letter := range letters {
		fmt.Printf("  %c = %d\n", letter, mapping[letter])
	}
	fmt.Printf("\n%s\n", substitute(puzzle, mapping))
}

// substitute replaces every assigned letter in the puzzle with its digit.
func substitute(text string, mapping solver.Mapping) string {
	return strings.Map(func(r rune) rune {
		if digit, ok := mapping[r]; ok {
			return rune('0' + digit)
		}
		return r
	}, text)
}
