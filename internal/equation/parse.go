// Package equation parses verbal-arithmetic puzzles such as
// "SEND+MORE=MONEY" into an evaluable postfix form and evaluates that form
// under candidate letter-to-digit assignments.
package equation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidToken is returned by Parse when the input contains a character
// that is neither a letter, an operator, whitespace, nor '='.
var ErrInvalidToken = errors.New("invalid token")

// isOperator reports whether c is one of the four supported operators.
func isOperator(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/'
}

// precedence returns the binding strength of an operator. '*' and '/' bind
// tighter than '+' and '-'; both groups are left-associative.
func precedence(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	}
	return 0
}

// Parse turns an input string into an Equation using the shunting-yard
// algorithm. The word following '=' becomes the result word rather than a
// postfix operand. Parse validates the postfix shape by running one trial
// evaluation with an empty mapping, so a structurally broken expression
// (e.g. two adjacent operators) fails here rather than during a search.
func Parse(text string) (*Equation, error) {
	// Pad separators around operators so words and operators can be
	// scanned independently regardless of input spacing.
	for _, op := range []string{"+", "-", "*", "/"} {
		text = strings.ReplaceAll(text, op, " "+op+" ")
	}

	eq := &Equation{
		Leading: make(map[rune]bool),
	}

	var buffer []rune
	var operators []byte

	flushWord := func() string {
		word := string(buffer)
		buffer = buffer[:0]
		eq.addLetters(word)
		return word
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			buffer = append(buffer, r)
			continue
		}
		if !isOperator(r) && !unicode.IsSpace(r) && r != '=' {
			return nil, fmt.Errorf("%w %q", ErrInvalidToken, r)
		}

		if len(buffer) > 0 {
			eq.Postfix = append(eq.Postfix, Token{Word: flushWord()})
		} else if isOperator(r) {
			// Pop while the stack top binds at least as tightly.
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if precedence(top) < precedence(byte(r)) {
					break
				}
				eq.Postfix = append(eq.Postfix, Token{Op: top})
				operators = operators[:len(operators)-1]
			}
			operators = append(operators, byte(r))
		}
	}

	// A pending word at end of input is the right-hand side.
	if len(buffer) > 0 {
		eq.Result = flushWord()
	}

	for len(operators) > 0 {
		eq.Postfix = append(eq.Postfix, Token{Op: operators[len(operators)-1]})
		operators = operators[:len(operators)-1]
	}

	// Trial evaluation with an empty mapping catches malformed postfix
	// sequences before any solving starts.
	if _, err := Evaluate(eq, nil); err != nil {
		return nil, err
	}

	return eq, nil
}
