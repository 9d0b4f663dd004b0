package symbols

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

// styleable arrays for big libraries may be really long
const maxLineLength = 16 * 1024 * 1024

type readOptions struct {
	name string
	pkg  string
}

// ReadOption customizes table produced by Read. Symbol files carry neither
// table name nor package so those come from the caller.
type ReadOption func(*readOptions)

// WithTableName sets name of the resulting table.
func WithTableName(name string) ReadOption {
	return func(o *readOptions) {
		o.name = name
	}
}

// WithTablePackage sets package of the resulting table.
func WithTablePackage(pkg string) ReadOption {
	return func(o *readOptions) {
		o.pkg = pkg
	}
}

// Read parses symbol text, one symbol per line:
//
//	int xml authenticator 0x7f040000
//	int[] styleable LimitedSizeLinearLayout { 0x7f010000, 0x7f010001 }
//
// Blank lines are skipped. Any malformed line or duplicate symbol fails the
// whole read.
func Read(r io.Reader, options ...ReadOption) (*Table, error) {
	opts := &readOptions{}
	for _, setOpt := range options {
		setOpt(opts)
	}

	b := NewBuilder().TableName(opts.name).TablePackage(opts.pkg)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for num := 1; scanner.Scan(); num++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		s, err := parseLine(num, line)
		if err != nil {
			return nil, err
		}
		if err := b.Add(s); err != nil {
			return nil, fmt.Errorf("line %d: %w", num, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read symbols: %w", err)
	}
	return b.Build()
}

// ReadFile reads symbol table from file.
func ReadFile(fs afero.Fs, path string, options ...ReadOption) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open symbol file: %w", err)
	}
	defer f.Close()

	t, err := Read(f, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse symbol file (%s): %w", path, err)
	}
	return t, nil
}

func parseLine(num int, line string) (Symbol, error) {
	fail := func(reason string) (Symbol, error) {
		return Symbol{}, &FormatError{Line: num, Text: line, Reason: reason}
	}

	typeTok, rest := nextField(line)
	class, rest := nextField(rest)
	name, rest := nextField(rest)
	value := strings.TrimSpace(rest)
	if len(value) == 0 {
		return fail("expected <type> <class> <name> <value>")
	}

	typ, err := ParseValueType(typeTok)
	if err != nil {
		return fail(err.Error())
	}

	s := NewSymbol(class, name, typ, value)
	if reason := s.check(); len(reason) > 0 {
		return fail(reason)
	}
	return s, nil
}

// nextField splits off first whitespace delimited token.
func nextField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// Write outputs table in the format Read accepts. Lines are sorted by class
// and then by name, values are written exactly as stored.
func Write(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for _, s := range t.Symbols() {
		if _, err := bw.WriteString(s.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes table to the file creating directories if necessary. Any
// existing file is replaced only when the new content was written
// completely.
func WriteFile(fs afero.Fs, t *Table, path string) error {
	buf := new(bytes.Buffer)
	if err := Write(buf, t); err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create directory for symbol file: %w", err)
	}
	if err := replaceFile(fs, path, buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write symbol file: %w", err)
	}
	return nil
}

// replaceFile writes data to a temporary file next to path and renames it
// over path, so path either keeps old content or gets all of the new one.
func replaceFile(fs afero.Fs, path string, data []byte) (err error) {
	f, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = fs.Chmod(tmp, 0644); err != nil {
		return err
	}
	return fs.Rename(tmp, path)
}
