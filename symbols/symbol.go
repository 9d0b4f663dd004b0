// Package symbols implements resource symbol tables: parsing of symbol text
// files (R.txt), writing them back in canonical form and generating Java
// sources with nested classes of resource identifiers.
package symbols

import (
	"cmp"
	"fmt"
	"strings"
	"unicode"
)

// ValueType is the kind of value a symbol carries.
type ValueType int

const (
	// ValueTypeInt is a single integer literal.
	ValueTypeInt ValueType = iota
	// ValueTypeIntArray is a brace delimited list of integer literals.
	ValueTypeIntArray
)

const (
	valueTypeIntName      = "int"
	valueTypeIntArrayName = "int[]"
)

var valueTypeNames = map[ValueType]string{
	ValueTypeInt:      valueTypeIntName,
	ValueTypeIntArray: valueTypeIntArrayName,
}

var valueTypeValues = map[string]ValueType{
	valueTypeIntName:      ValueTypeInt,
	valueTypeIntArrayName: ValueTypeIntArray,
}

// ParseValueType converts the textual token into ValueType.
func ParseValueType(name string) (ValueType, error) {
	if v, ok := valueTypeValues[name]; ok {
		return v, nil
	}
	return ValueType(0), fmt.Errorf("%q is not a valid value type", name)
}

// String returns the token used for the type in symbol files.
func (v ValueType) String() string {
	if s, ok := valueTypeNames[v]; ok {
		return s
	}
	return fmt.Sprintf("ValueType(%d)", int(v))
}

// IsValid reports whether v is one of the known value types.
func (v ValueType) IsValid() bool {
	_, ok := valueTypeNames[v]
	return ok
}

// JavaType returns the Java type used for fields of this value type.
func (v ValueType) JavaType() string {
	return v.String()
}

// Symbol is a single named resource identifier. Value keeps the literal text
// exactly as it was found in the input: hex and decimal forms as well as the
// spacing inside arrays are never normalized.
type Symbol struct {
	Class string
	Name  string
	Type  ValueType
	Value string
}

func NewSymbol(class, name string, typ ValueType, value string) Symbol {
	return Symbol{Class: class, Name: name, Type: typ, Value: value}
}

// String returns symbol in the symbol file line format.
func (s Symbol) String() string {
	return s.Type.String() + " " + s.Class + " " + s.Name + " " + s.Value
}

// check returns the reason symbol could not be written as a single line of
// symbol text and read back unchanged, or empty string when it can.
func (s Symbol) check() string {
	switch {
	case !s.Type.IsValid():
		return fmt.Sprintf("unknown value type %s", s.Type)
	case !isToken(s.Class):
		return fmt.Sprintf("class %q is not a single token", s.Class)
	case !isToken(s.Name):
		return fmt.Sprintf("name %q is not a single token", s.Name)
	case len(s.Value) == 0:
		return "empty value"
	case s.Value != strings.TrimSpace(s.Value) || strings.ContainsAny(s.Value, "\r\n"):
		return "value has leading, trailing or line breaking white space"
	}

	switch s.Type {
	case ValueTypeInt:
		if strings.ContainsFunc(s.Value, unicode.IsSpace) {
			return "unexpected content after integer value"
		}
	case ValueTypeIntArray:
		if !strings.HasPrefix(s.Value, "{") {
			return "array value must start with '{'"
		}
		if !strings.HasSuffix(s.Value, "}") {
			return "array value must end with '}'"
		}
	}
	return ""
}

func isToken(s string) bool {
	return len(s) > 0 && !strings.ContainsFunc(s, unicode.IsSpace)
}

type symbolKey struct {
	class, name string
}

func (s Symbol) key() symbolKey {
	return symbolKey{class: s.Class, name: s.Name}
}

// compareSymbols orders symbols by class and then by name, both by code point.
func compareSymbols(a, b Symbol) int {
	return cmp.Or(cmp.Compare(a.Class, b.Class), cmp.Compare(a.Name, b.Name))
}
