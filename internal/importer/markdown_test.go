package importer

import (
	"strings"
	"testing"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/texdoc"
)

// blocks returns the container children of p.
func blocks(p docpart.Part) []docpart.Container {
	var out []docpart.Container
	for _, child := range p.Parts() {
		if c, ok := child.(docpart.Container); ok {
			out = append(out, c)
		}
	}
	return out
}

func titleOf(p docpart.Part) string {
	if t := p.Parts(); len(t) > 0 && t[0].Name() == "title" {
		return t[0].Text()
	}
	return ""
}

func TestMarkdownImporter_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownImporter{}
	part, err := p.Import(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if part.Name() != "netdocDoc" {
		t.Errorf("expected name %q, got %q", "netdocDoc", part.Name())
	}

	top := blocks(part)
	if len(top) != 1 {
		t.Fatalf("expected 1 top-level block (h1), got %d", len(top))
	}
	h1 := top[0]
	if titleOf(h1) != "Title" || h1.Name() != "netdocTitle" {
		t.Errorf("unexpected h1 %q titled %q", h1.Name(), titleOf(h1))
	}
	if !strings.Contains(h1.Text(), "Intro text.") {
		t.Errorf("expected h1 text to contain %q, got %q", "Intro text.", h1.Text())
	}

	sections := blocks(h1)
	if len(sections) != 2 {
		t.Fatalf("expected 2 h2 blocks, got %d", len(sections))
	}
	secA, secB := sections[0], sections[1]
	if titleOf(secA) != "Section A" || titleOf(secB) != "Section B" {
		t.Errorf("unexpected h2 titles %q, %q", titleOf(secA), titleOf(secB))
	}
	sub := blocks(secA)
	if len(sub) != 1 || titleOf(sub[0]) != "Subsection A1" {
		t.Fatalf("expected Subsection A1 under Section A")
	}
	if h1.Part("netdocSubsectionA1") == nil {
		t.Errorf("expected depth-first lookup to find the subsection")
	}
}

func TestMarkdownImporter_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownImporter{}
	part, err := p.Import(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks(part)) != 0 {
		t.Fatalf("expected no nested blocks for headingless markdown")
	}
	want := "Just some plain text.\n\nAnother paragraph here.\n"
	if got := part.Parts()[1].Text(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkdownImporter_DuplicateHeadings(t *testing.T) {
	input := "# Notes\n\na\n\n# Notes\n\nb\n"
	p := &MarkdownImporter{}
	part, err := p.Import(strings.NewReader(input), "dup.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := blocks(part)
	if len(top) != 2 || top[0].Name() != "netdocNotes" || top[1].Name() != "netdocNotes2" {
		t.Fatalf("expected deduplicated sibling names, got %v", top)
	}
}

func TestMarkdownImporter_RoundTripsThroughTeX(t *testing.T) {
	input := "# API Reference\n\nSome intro.\n\n## Endpoints\n\n```\nGET /api/users\n```\n\nMore text after code.\n"
	p := &MarkdownImporter{}
	part, err := p.Import(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out strings.Builder
	if err := texdoc.Write(&out, part); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := texdoc.Parse(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	endpoints := back.Part("netdocEndpoints")
	if endpoints == nil {
		t.Fatalf("expected netdocEndpoints after round trip:\n%s", out.String())
	}
	if !strings.Contains(endpoints.Text(), "GET /api/users") || !strings.Contains(endpoints.Text(), "More text after code.") {
		t.Errorf("unexpected endpoints text %q", endpoints.Text())
	}
}
