package importer

import (
	"strconv"
	"strings"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/texdoc"
)

// sectionBuilder nests blocks by heading level. Text collected between
// headings lands in the innermost open block as one free-text fragment.
type sectionBuilder struct {
	root  *docpart.Linear
	stack []stackEntry
	text  strings.Builder
}

type stackEntry struct {
	block *docpart.Linear
	level int
}

// newSectionBuilder opens the root block, level 0, so every heading
// nests under it.
func newSectionBuilder(title string) *sectionBuilder {
	root := newTitledBlock(nil, title)
	return &sectionBuilder{
		root:  root,
		stack: []stackEntry{{block: root, level: 0}},
	}
}

// heading closes blocks at the same or a deeper level and opens a new one.
func (b *sectionBuilder) heading(level int, title string) {
	b.flushText()
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].block
	block := newTitledBlock(parent, title)
	b.stack = append(b.stack, stackEntry{block: block, level: level})
}

// paragraph queues text for the innermost open block.
func (b *sectionBuilder) paragraph(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if b.text.Len() > 0 {
		b.text.WriteString("\n\n")
	}
	b.text.WriteString(t)
}

func (b *sectionBuilder) flushText() {
	if b.text.Len() == 0 {
		return
	}
	top := b.stack[len(b.stack)-1].block
	top.AppendPart(texdoc.NewText(texdoc.EscapeBody(b.text.String() + "\n")))
	b.text.Reset()
}

// finish returns the root block, unmodified.
func (b *sectionBuilder) finish() *docpart.Linear {
	b.flushText()
	b.root.SetModified(false)
	return b.root
}

// newTitledBlock creates a block named after title, with a title
// definition as its first part, and appends it to parent if given.
func newTitledBlock(parent *docpart.Linear, title string) *docpart.Linear {
	block := docpart.NewLinear(uniqueName(parent, texdoc.BlockName(title)))
	if title != "" {
		block.AppendPart(texdoc.NewDefinition("title", texdoc.EscapeValue(title)))
	}
	if parent != nil {
		parent.AppendPart(block)
	}
	return block
}

// addTextBlock appends a block holding a single text fragment. The TeX
// form of such a block collapses to a leaf, so the leaf is stored
// directly.
func addTextBlock(parent *docpart.Linear, name, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	parent.AppendPart(docpart.NewLeaf(uniqueName(parent, name), texdoc.EscapeBody(text+"\n")))
}

// uniqueName suffixes name with a counter while a sibling already uses it.
func uniqueName(parent *docpart.Linear, name string) string {
	if parent == nil || parent.IndexOfPart(name) < 0 {
		return name
	}
	for n := 2; ; n++ {
		candidate := name + strconv.Itoa(n)
		if parent.IndexOfPart(candidate) < 0 {
			return candidate
		}
	}
}
