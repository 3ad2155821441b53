package equation

import (
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow is returned when an operator is applied with fewer
	// than two operands available.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrMalformedExpression is returned when evaluation does not end with
	// exactly one value, or the equation has no result word.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrDivisionByZero is returned when a candidate assignment makes a
	// divisor zero. During a search this marks the assignment invalid; it
	// never aborts the search itself.
	ErrDivisionByZero = errors.New("division by zero")
)

// wordValue converts a word to a number under the given mapping, most
// significant letter first. A letter with no assignment counts as digit 1;
// this deviates from treating unassigned letters as unknown, and is relied
// on by the parser's structural validation pass, which evaluates with an
// empty mapping.
func wordValue(word string, mapping map[rune]int) int64 {
	var n int64
	for _, r := range word {
		digit, ok := mapping[r]
		if !ok {
			digit = 1
		}
		n = n*10 + int64(digit)
	}
	return n
}

// Evaluate reports whether the equation holds under the given (possibly
// partial) letter-to-digit mapping. The postfix sequence is evaluated on a
// stack with int64 arithmetic; division truncates toward zero.
func Evaluate(eq *Equation, mapping map[rune]int) (bool, error) {
	var stack []int64
	for _, tok := range eq.Postfix {
		if !tok.IsOperator() {
			stack = append(stack, wordValue(tok.Word, mapping))
			continue
		}

		if len(stack) < 2 {
			return false, fmt.Errorf("%w: operator %q needs two operands", ErrStackUnderflow, tok.Op)
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		var res int64
		switch tok.Op {
		case '+':
			res = a + b
		case '-':
			res = a - b
		case '*':
			res = a * b
		case '/':
			if b == 0 {
				return false, ErrDivisionByZero
			}
			res = a / b
		}
		stack = append(stack, res)
	}

	if len(stack) != 1 {
		return false, fmt.Errorf("%w: %d values left after evaluation", ErrMalformedExpression, len(stack))
	}
	if eq.Result == "" {
		return false, fmt.Errorf("%w: missing result word", ErrMalformedExpression)
	}

	return stack[0] == wordValue(eq.Result, mapping), nil
}
