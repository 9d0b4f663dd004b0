package symbols

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueType(t *testing.T) {
	tests := []struct {
		in      string
		want    ValueType
		wantErr bool
	}{
		{in: "int", want: ValueTypeInt},
		{in: "int[]", want: ValueTypeIntArray},
		{in: "long", wantErr: true},
		{in: "int []", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseValueType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
			assert.True(t, got.IsValid())
		})
	}
	assert.False(t, ValueType(7).IsValid())
	assert.Equal(t, "ValueType(7)", ValueType(7).String())
}

func TestBuilder_Defaults(t *testing.T) {
	table, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultTableName, table.Name())
	assert.Empty(t, table.Package())
	assert.Zero(t, table.Len())
	assert.Empty(t, table.Classes())
	assert.Empty(t, table.Symbols())
}

func TestBuilder_NameAndPackage(t *testing.T) {
	table := NewBuilder().TableName("Roar").TablePackage("test.pkg").MustBuild()
	assert.Equal(t, "Roar", table.Name())
	assert.Equal(t, "test.pkg", table.Package())
}

func TestBuilder_RejectsDuplicates(t *testing.T) {
	b := NewBuilder()
	first := NewSymbol("string", "app_name", ValueTypeInt, "0x7f030000")
	second := NewSymbol("string", "app_name", ValueTypeInt, "0x7f030001")

	require.NoError(t, b.Add(first))
	err := b.Add(second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)

	var dup *DuplicateSymbolError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "string", dup.Class)
	assert.Equal(t, "app_name", dup.Name)

	// earlier symbol wins and the table can no longer be built
	assert.Equal(t, first, b.symbols[first.key()])
	table, err := b.Build()
	assert.Nil(t, table)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestBuilder_RejectsInvalidSymbols(t *testing.T) {
	tests := []struct {
		name   string
		symbol Symbol
	}{
		{name: "unknown type", symbol: NewSymbol("xml", "a", ValueType(9), "1")},
		{name: "empty class", symbol: NewSymbol("", "a", ValueTypeInt, "1")},
		{name: "class with space", symbol: NewSymbol("my class", "a", ValueTypeInt, "1")},
		{name: "name with tab", symbol: NewSymbol("id", "a\tb", ValueTypeInt, "1")},
		{name: "empty value", symbol: NewSymbol("id", "a", ValueTypeInt, "")},
		{name: "int with two tokens", symbol: NewSymbol("id", "a", ValueTypeInt, "1 2")},
		{name: "padded value", symbol: NewSymbol("id", "a", ValueTypeInt, " 1")},
		{name: "multi line value", symbol: NewSymbol("styleable", "a", ValueTypeIntArray, "{ 1,\n2 }")},
		{name: "array without braces", symbol: NewSymbol("styleable", "a", ValueTypeIntArray, "0x7f010000")},
		{name: "array without closing brace", symbol: NewSymbol("styleable", "a", ValueTypeIntArray, "{ 0x7f010000")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			err := b.Add(tt.symbol)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSymbol)

			var ierr *InvalidSymbolError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, tt.symbol, ierr.Symbol)
			assert.NotEmpty(t, ierr.Reason)
			assert.Zero(t, len(b.symbols))

			// no partial table, even after valid symbols
			require.NoError(t, b.Add(NewSymbol("id", "ok", ValueTypeInt, "1")))
			table, err := b.Build()
			assert.Nil(t, table)
			assert.ErrorIs(t, err, ErrInvalidSymbol)
		})
	}
}

func TestBuilder_AcceptedSymbolsRoundTrip(t *testing.T) {
	table := mustTable(t, NewBuilder(),
		NewSymbol("styleable", "Empty", ValueTypeIntArray, "{}"),
		NewSymbol("styleable", "Spaced", ValueTypeIntArray, "{  0x1 ,0x2  }"),
		NewSymbol("id", "hex", ValueTypeInt, "0x7f050000"),
		NewSymbol("id", "dec", ValueTypeInt, "-1"),
	)

	buf := new(strings.Builder)
	require.NoError(t, Write(buf, table))
	copied, err := Read(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.True(t, table.Equal(copied))
}

func TestBuilder_SameNameDifferentClass(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddAll(
		NewSymbol("id", "title", ValueTypeInt, "0x7f050000"),
		NewSymbol("string", "title", ValueTypeInt, "0x7f030000"),
	))
	table, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestBuilder_AddAllStopsOnDuplicate(t *testing.T) {
	b := NewBuilder()
	err := b.AddAll(
		NewSymbol("id", "a", ValueTypeInt, "1"),
		NewSymbol("id", "a", ValueTypeInt, "2"),
		NewSymbol("id", "b", ValueTypeInt, "3"),
	)
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
	assert.Len(t, b.symbols, 1)
}

func TestBuilder_TableIsDetached(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(NewSymbol("id", "a", ValueTypeInt, "1")))
	table := b.MustBuild()
	require.NoError(t, b.Add(NewSymbol("id", "b", ValueTypeInt, "2")))
	assert.Equal(t, 1, table.Len())
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	b := NewBuilder()
	_ = b.Add(NewSymbol("id", "a", ValueTypeInt, "1"))
	_ = b.Add(NewSymbol("id", "a", ValueTypeInt, "1"))
	assert.Panics(t, func() { b.MustBuild() })
}

func TestTable_Ordering(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddAll(
		NewSymbol("style", "AppTheme", ValueTypeInt, "0x7f040001"),
		NewSymbol("drawable", "ic_launcher", ValueTypeInt, "0x7f020001"),
		NewSymbol("style", "AppBaseTheme", ValueTypeInt, "0x7f040000"),
		NewSymbol("drawable", "foobar", ValueTypeInt, "0x7f020000"),
		NewSymbol("string", "lib1", ValueTypeInt, "0x7f030001"),
		NewSymbol("string", "app_name", ValueTypeInt, "0x7f030000"),
	))
	table := b.MustBuild()

	assert.Equal(t, []string{"drawable", "string", "style"}, table.Classes())

	want := []Symbol{
		NewSymbol("drawable", "foobar", ValueTypeInt, "0x7f020000"),
		NewSymbol("drawable", "ic_launcher", ValueTypeInt, "0x7f020001"),
		NewSymbol("string", "app_name", ValueTypeInt, "0x7f030000"),
		NewSymbol("string", "lib1", ValueTypeInt, "0x7f030001"),
		NewSymbol("style", "AppBaseTheme", ValueTypeInt, "0x7f040000"),
		NewSymbol("style", "AppTheme", ValueTypeInt, "0x7f040001"),
	}
	if diff := cmp.Diff(want, table.Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[4:], table.SymbolsOf("style")); diff != "" {
		t.Errorf("SymbolsOf(style) mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, table.SymbolsOf("missing"))
}

func TestTable_Lookup(t *testing.T) {
	table := NewBuilder().MustBuild()
	_, ok := table.Lookup("xml", "authenticator")
	assert.False(t, ok)

	b := NewBuilder()
	s := NewSymbol("xml", "authenticator", ValueTypeInt, "0x7f040000")
	require.NoError(t, b.Add(s))
	table = b.MustBuild()

	got, ok := table.Lookup("xml", "authenticator")
	require.True(t, ok)
	assert.Equal(t, s, got)
}

func TestTable_Equal(t *testing.T) {
	a := NewSymbol("id", "a", ValueTypeInt, "1")
	c := NewSymbol("id", "c", ValueTypeInt, "2")

	build := func(pkg string, symbols ...Symbol) *Table {
		b := NewBuilder().TablePackage(pkg)
		require.NoError(t, b.AddAll(symbols...))
		return b.MustBuild()
	}

	assert.True(t, build("p", a, c).Equal(build("p", c, a)))
	assert.False(t, build("p", a, c).Equal(build("q", a, c)))
	assert.False(t, build("p", a).Equal(build("p", a, c)))
	assert.False(t, build("p", a).Equal(build("p", NewSymbol("id", "a", ValueTypeInt, "0x1"))))
	assert.False(t, build("p", a).Equal(nil))

	var none *Table
	assert.True(t, none.Equal(nil))
}

func TestTable_String(t *testing.T) {
	b := NewBuilder().TablePackage("test.pkg")
	require.NoError(t, b.AddAll(
		NewSymbol("id", "item10", ValueTypeInt, "0x7f050001"),
		NewSymbol("id", "item2", ValueTypeInt, "0x7f050000"),
		NewSymbol("styleable", "View", ValueTypeIntArray, "{ 0x7f010000 }"),
	))
	dump := b.MustBuild().String()

	assert.True(t, strings.HasPrefix(dump, `Table "R" package "test.pkg" (3 symbols)`))
	assert.Less(t, strings.Index(dump, "item2"), strings.Index(dump, "item10"), "natural order expected")
	assert.Contains(t, dump, `Value: "{ 0x7f010000 }"`)

	var none *Table
	assert.Equal(t, "<nil Table>", none.String())
	assert.Contains(t, NewBuilder().MustBuild().String(), `package "<default>"`)
}

func TestErrors(t *testing.T) {
	ferr := &FormatError{Line: 3, Text: "int xml", Reason: "expected 4 fields"}
	assert.True(t, errors.Is(ferr, ErrFormat))
	assert.False(t, errors.Is(ferr, ErrDuplicateSymbol))
	assert.Contains(t, ferr.Error(), "line 3")
	assert.Contains(t, ferr.Error(), `"int xml"`)

	derr := &DuplicateSymbolError{Class: "id", Name: "a"}
	assert.True(t, errors.Is(derr, ErrDuplicateSymbol))
	assert.False(t, errors.Is(derr, ErrFormat))
	assert.Contains(t, derr.Error(), `class "id", name "a"`)

	ierr := &InvalidSymbolError{Symbol: NewSymbol("id", "a", ValueType(9), "1"), Reason: "unknown value type ValueType(9)"}
	assert.True(t, errors.Is(ierr, ErrInvalidSymbol))
	assert.False(t, errors.Is(ierr, ErrFormat))
	assert.Contains(t, ierr.Error(), "ValueType(9)")
}
