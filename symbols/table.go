package symbols

import (
	"maps"
	"slices"
)

// DefaultTableName is used when table name was never set.
const DefaultTableName = "R"

// Table is an immutable, deduplicated collection of symbols. Symbols are
// unique by (class, name). Use Builder to create one.
type Table struct {
	name    string
	pkg     string
	symbols map[symbolKey]Symbol
}

// Name returns table (outer class) name.
func (t *Table) Name() string {
	return t.name
}

// Package returns table package, empty for default package.
func (t *Table) Package() string {
	return t.pkg
}

// Len returns number of symbols in the table.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Lookup finds symbol by its resource class and name.
func (t *Table) Lookup(class, name string) (Symbol, bool) {
	s, ok := t.symbols[symbolKey{class: class, name: name}]
	return s, ok
}

// Symbols returns all symbols ordered by class and then by name.
func (t *Table) Symbols() []Symbol {
	all := slices.Collect(maps.Values(t.symbols))
	slices.SortFunc(all, compareSymbols)
	return all
}

// Classes returns sorted list of distinct resource classes present in the
// table.
func (t *Table) Classes() []string {
	seen := make(map[string]struct{})
	for k := range t.symbols {
		seen[k.class] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// SymbolsOf returns symbols of a single resource class ordered by name.
func (t *Table) SymbolsOf(class string) []Symbol {
	var res []Symbol
	for k, s := range t.symbols {
		if k.class == class {
			res = append(res, s)
		}
	}
	slices.SortFunc(res, compareSymbols)
	return res
}

// Equal reports whether both tables have the same name, package and set of
// symbols. Order in which symbols were added does not matter.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name && t.pkg == other.pkg && maps.Equal(t.symbols, other.symbols)
}

// Builder accumulates symbols for a new Table. Zero value is not usable, use
// NewBuilder.
type Builder struct {
	name    string
	pkg     string
	symbols map[symbolKey]Symbol
	err     error
}

func NewBuilder() *Builder {
	return &Builder{symbols: make(map[symbolKey]Symbol)}
}

// TableName sets name of the table, empty name resets it to DefaultTableName.
func (b *Builder) TableName(name string) *Builder {
	b.name = name
	return b
}

// TablePackage sets package of the table, empty means default package.
func (b *Builder) TablePackage(pkg string) *Builder {
	b.pkg = pkg
	return b
}

// Add puts symbol into the table being built. Symbol which could not be
// written back as symbol text is rejected with InvalidSymbolError. Symbol
// with the same class and name as one added earlier is rejected with
// DuplicateSymbolError, the earlier one is kept. After any rejection Build
// fails.
func (b *Builder) Add(s Symbol) error {
	if reason := s.check(); len(reason) > 0 {
		return b.reject(&InvalidSymbolError{Symbol: s, Reason: reason})
	}
	k := s.key()
	if _, exists := b.symbols[k]; exists {
		return b.reject(&DuplicateSymbolError{Class: s.Class, Name: s.Name})
	}
	b.symbols[k] = s
	return nil
}

// reject remembers the first error for Build.
func (b *Builder) reject(err error) error {
	if b.err == nil {
		b.err = err
	}
	return err
}

// AddAll adds symbols one by one stopping at the first failure.
func (b *Builder) AddAll(symbols ...Symbol) error {
	for _, s := range symbols {
		if err := b.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// Build freezes accumulated symbols into a Table. It fails if any of the
// earlier Add calls was rejected, no partial table is ever returned.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := &Table{
		name:    b.name,
		pkg:     b.pkg,
		symbols: maps.Clone(b.symbols),
	}
	if t.name == "" {
		t.name = DefaultTableName
	}
	if t.symbols == nil {
		t.symbols = make(map[symbolKey]Symbol)
	}
	return t, nil
}

// MustBuild is like Build but panics on error. Intended for tables made of
// literals.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
