package equation

import (
	"sort"
	"strings"
)

// Token is a single element of a parsed equation: either a word (an ordered
// run of letters forming one operand) or one of the four operators.
// A token is a word when Op is zero.
type Token struct {
	Word string
	Op   byte
}

// IsOperator reports whether the token is an operator rather than a word.
func (t Token) IsOperator() bool {
	return t.Op != 0
}

// Equation is the parsed form of one puzzle. The left-hand side is held as
// a postfix (reverse Polish) token sequence, the right-hand side as a single
// word. Letters holds every distinct letter in ascending order; Leading
// holds the first letter of each word, which may never map to digit 0.
//
// An Equation is immutable after Parse; search working state lives in the
// solver, not here.
type Equation struct {
	Postfix []Token
	Result  string
	Letters []rune
	Leading map[rune]bool
}

// Key returns a canonical string form of the equation structure, suitable
// as a cache key. Two parses of the same input always produce equal keys.
func (e *Equation) Key() string {
	var sb strings.Builder
	for i, tok := range e.Postfix {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if tok.IsOperator() {
			sb.WriteByte(tok.Op)
		} else {
			sb.WriteString(tok.Word)
		}
	}
	sb.WriteByte('=')
	sb.WriteString(e.Result)
	return sb.String()
}

// addLetters records every letter of a word, keeping Letters sorted and
// duplicate-free, and marks the word's first letter as leading.
func (e *Equation) addLetters(word string) {
	runes := []rune(word)
	e.Leading[runes[0]] = true
	for _, r := range runes {
		i := sort.Search(len(e.Letters), func(i int) bool { return e.Letters[i] >= r })
		if i < len(e.Letters) && e.Letters[i] == r {
			continue
		}
		e.Letters = append(e.Letters, 0)
		copy(e.Letters[i+1:], e.Letters[i:])
		e.Letters[i] = r
	}
}
