package symbols

import (
	"sort"

	"github.com/maruel/natural"

	"rgen/utils/textutil"
)

// String returns a readable tree of the table. Names are in natural order
// which is easier on the eyes than the order used for generation. It exists
// solely for manual inspection during debugging.
func (t *Table) String() string {
	if t == nil {
		return "<nil Table>"
	}

	tw := textutil.NewTreeWriter()
	pkg := t.pkg
	if len(pkg) == 0 {
		pkg = "<default>"
	}
	tw.Line(0, "Table %q package %q (%d symbols)", t.name, pkg, len(t.symbols))

	byClass := make(map[string][]Symbol)
	for _, s := range t.symbols {
		byClass[s.Class] = append(byClass[s.Class], s)
	}

	classes := make([]string, 0, len(byClass))
	for k := range byClass {
		classes = append(classes, k)
	}
	sort.Sort(natural.StringSlice(classes))

	for _, class := range classes {
		list := byClass[class]
		sort.Slice(list, func(i, j int) bool {
			return natural.Less(list[i].Name, list[j].Name)
		})
		tw.Line(1, "Class[%q] (%d symbols)", class, len(list))
		for _, s := range list {
			tw.Line(2, "%s %s", s.Type, s.Name)
			tw.TextBlock(3, "Value", s.Value)
		}
	}
	return tw.String()
}
