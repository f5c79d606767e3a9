package output

import (
	"strings"
)

// StackTree is a rendered view of one stack: the tip plus its member
// branches ordered nearest-first.
type StackTree struct {
	Tip     string
	Members []string
}

// Render produces the tree listing for a stack:
//
//	tip
//	    ├─ member-1
//	    └─ member-2
func (t StackTree) Render() string {
	var b strings.Builder
	b.WriteString(ColorTip(t.Tip))
	b.WriteString("\n")
	for i, member := range t.Members {
		connector := "├─"
		if i == len(t.Members)-1 {
			connector = "└─"
		}
		b.WriteString("    ")
		b.WriteString(ColorDim(connector))
		b.WriteString(" ")
		b.WriteString(ColorMember(member))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPlain is Render without styling, for logs and tests.
func (t StackTree) RenderPlain() string {
	var b strings.Builder
	b.WriteString(t.Tip)
	b.WriteString("\n")
	for i, member := range t.Members {
		connector := "├─"
		if i == len(t.Members)-1 {
			connector = "└─"
		}
		b.WriteString("    ")
		b.WriteString(connector)
		b.WriteString(" ")
		b.WriteString(member)
		b.WriteString("\n")
	}
	return b.String()
}
