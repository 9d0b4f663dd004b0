package symbols

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"rgen/utils/textutil"
)

const javaHeader = `/* AUTO-GENERATED FILE. DO NOT MODIFY.
 *
 * This class was automatically generated by the
 * gradle plugin from the resource data it found. It
 * should not be modified by hand.
 */`

// JavaPath returns slash separated path of the generated source relative to
// the output root: package segments become directories.
func JavaPath(t *Table) string {
	name := t.Name() + ".java"
	if len(t.Package()) == 0 {
		return name
	}
	return path.Join(append(strings.Split(t.Package(), "."), name)...)
}

// GenerateJava writes Java source for the table: outer class named after the
// table with one nested class per resource class. Nested classes are sorted
// by class name and fields by resource name, so output only depends on table
// content. When finalIDs is false fields are left mutable.
func GenerateJava(w io.Writer, t *Table, finalIDs bool) error {
	tw := textutil.NewTreeWriterIndent("    ")

	tw.Raw(0, javaHeader)
	tw.Empty()
	if len(t.Package()) > 0 {
		tw.Raw(0, "package "+t.Package()+";")
		tw.Empty()
	}

	modifiers := "public static final"
	if !finalIDs {
		modifiers = "public static"
	}

	tw.Raw(0, "public final class "+t.Name()+" {")
	for _, class := range t.Classes() {
		tw.Raw(1, "public static final class "+class+" {")
		for _, s := range t.SymbolsOf(class) {
			tw.Raw(2, modifiers+" "+s.Type.JavaType()+" "+s.Name+" = "+s.Value+";")
		}
		tw.Raw(1, "}")
	}
	tw.Empty()
	tw.Raw(0, "}")

	_, err := io.WriteString(w, tw.String())
	return err
}

// ExportToJava generates Java source for the table under dir, creating all
// necessary directories. Existing file is replaced only after the whole
// source was written. It returns the path of the written file.
func ExportToJava(fs afero.Fs, t *Table, dir string, finalIDs bool) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(JavaPath(t)))

	buf := new(bytes.Buffer)
	if err := GenerateJava(buf, t, finalIDs); err != nil {
		return "", fmt.Errorf("unable to generate java source: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := replaceFile(fs, target, buf.Bytes()); err != nil {
		return "", fmt.Errorf("unable to write java source (%s): %w", target, err)
	}
	return target, nil
}
