// Package locator describes how a page object finds its elements.
//
// A Locator is an immutable value rendered to a playwright selector string.
// Runtime values (a category name, a page number) are never spliced into a
// selector with fmt.Sprintf; they go through HasText or At, which validate
// and escape them.
package locator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type Strategy int

const (
	CSS Strategy = iota
	Text
	Nth
)

func (s Strategy) String() string {
	switch s {
	case CSS:
		return "css"
	case Text:
		return "text"
	case Nth:
		return "nth"
	}
	return "unknown"
}

var (
	ErrEmptySelector = errors.New("locator: empty selector")
	ErrInvalidText   = errors.New("locator: invalid text value")
	ErrInvalidIndex  = errors.New("locator: index must not be negative")
	ErrIndexedBase   = errors.New("locator: text filter applied to an indexed locator")
)

// Locator identifies zero or more elements on a page.
type Locator struct {
	strategy Strategy
	expr     string
	text     string
	exact    bool
	index    int
}

// New returns a CSS locator. It panics on an empty selector since page
// locator sets are fixed at compile time.
func New(selector string) Locator {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		panic(ErrEmptySelector)
	}
	return Locator{strategy: CSS, expr: selector}
}

// HasText scopes base to elements whose text contains text.
func HasText(base Locator, text string) (Locator, error) {
	if base.strategy == Nth {
		return Locator{}, ErrIndexedBase
	}
	text = strings.TrimSpace(text)
	if err := validateText(text); err != nil {
		return Locator{}, err
	}
	return Locator{strategy: Text, expr: base.String(), text: text}, nil
}

// TextIs is HasText with a whole-text match, so "1" does not match "10".
func TextIs(base Locator, text string) (Locator, error) {
	l, err := HasText(base, text)
	if err != nil {
		return Locator{}, err
	}
	l.exact = true
	return l, nil
}

// MustHasText is HasText for fixed locator sets. It panics on invalid text.
func MustHasText(base Locator, text string) Locator {
	l, err := HasText(base, text)
	if err != nil {
		panic(err)
	}
	return l
}

// At picks the index-th match (0-based) of base.
func At(base Locator, index int) (Locator, error) {
	if index < 0 {
		return Locator{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return Locator{strategy: Nth, expr: base.String(), index: index}, nil
}

// Within returns the descendant selector "base child".
func Within(base Locator, child string) Locator {
	return New(base.String() + " " + strings.TrimSpace(child))
}

func (l Locator) Strategy() Strategy { return l.strategy }

func (l Locator) IsZero() bool { return l.expr == "" }

// String renders the playwright selector.
func (l Locator) String() string {
	switch l.strategy {
	case Text:
		if l.exact {
			return l.expr + ":text-is(" + Quote(l.text) + ")"
		}
		return l.expr + ":has-text(" + Quote(l.text) + ")"
	case Nth:
		return l.expr + " >> nth=" + strconv.Itoa(l.index)
	default:
		return l.expr
	}
}

// Quote renders s as a double-quoted selector string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func validateText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: empty", ErrInvalidText)
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character %U in %q", ErrInvalidText, r, text)
		}
	}
	return nil
}
