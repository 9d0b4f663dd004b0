package textutil

import (
	"testing"
)

func TestNewTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw == nil {
		t.Fatal("NewTreeWriter() returned nil")
	}
	if tw.w == nil {
		t.Error("TreeWriter builder is nil")
	}
	if tw.indent != "  " {
		t.Errorf("default indent = %q, want two spaces", tw.indent)
	}
}

func TestTreeWriter_String(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Error("Expected empty string from new TreeWriter")
	}

	tw.w.WriteString("test content")
	if tw.String() != "test content" {
		t.Errorf("String() = %q, want %q", tw.String(), "test content")
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		indent string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", indent: "  ", depth: 0, format: "test", want: "test\n"},
		{name: "depth 1", indent: "  ", depth: 1, format: "indented", want: "  indented\n"},
		{name: "depth 2", indent: "  ", depth: 2, format: "double indent", want: "    double indent\n"},
		{name: "four spaces", indent: "    ", depth: 2, format: "field", want: "        field\n"},
		{name: "negative depth", indent: "  ", depth: -1, format: "flat", want: "flat\n"},
		{name: "with formatting", indent: "  ", depth: 1, format: "%s=%d", args: []any{"key", 42}, want: "  key=42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriterIndent(tt.indent)
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Raw(t *testing.T) {
	tw := NewTreeWriterIndent("    ")
	tw.Raw(1, "int[] x = { 1, 2 }; // 100%")
	tw.Empty()
	want := "    int[] x = { 1, 2 }; // 100%\n\n"
	if got := tw.String(); got != want {
		t.Errorf("Raw() = %q, want %q", got, want)
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{name: "simple", depth: 0, label: "Value", value: "text", want: "Value: \"text\"\n"},
		{name: "empty", depth: 1, label: "Empty", value: "", want: "  Empty: \n"},
		{name: "escaped", depth: 0, label: "Q", value: "a\tb", want: "Q: \"a\\tb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}
