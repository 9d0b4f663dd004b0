package symbols

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched (errors.Is) by every FormatError.
	ErrFormat = errors.New("malformed symbol line")
	// ErrDuplicateSymbol is matched (errors.Is) by every DuplicateSymbolError.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrInvalidSymbol is matched (errors.Is) by every InvalidSymbolError.
	ErrInvalidSymbol = errors.New("invalid symbol")
)

// FormatError reports a line of symbol text which does not follow the
// "<type> <class> <name> <value>" grammar.
type FormatError struct {
	Line   int    // 1-based line number
	Text   string // raw line as read
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s: %s (%q)", e.Line, ErrFormat, e.Reason, e.Text)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// DuplicateSymbolError reports second symbol with the same class and name
// being added to a table.
type DuplicateSymbolError struct {
	Class string
	Name  string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("%s: class %q, name %q", ErrDuplicateSymbol, e.Class, e.Name)
}

func (e *DuplicateSymbolError) Is(target error) bool {
	return target == ErrDuplicateSymbol
}

// InvalidSymbolError reports symbol which could not be represented in symbol
// text: unknown type, class or name with white space, malformed value.
type InvalidSymbolError struct {
	Symbol Symbol
	Reason string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%s: class %q, name %q: %s", ErrInvalidSymbol, e.Symbol.Class, e.Symbol.Name, e.Reason)
}

func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}
