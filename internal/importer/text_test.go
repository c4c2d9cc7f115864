package importer

import (
	"strings"
	"testing"

	"github.com/dgallion1/netdoc/internal/docpart"
)

// paragraphs returns the text blocks of an imported text file, skipping
// the title definition.
func paragraphs(t *testing.T, part docpart.Part) []string {
	t.Helper()
	var out []string
	for _, p := range part.Parts() {
		if p.Name() == "title" {
			continue
		}
		out = append(out, p.Text())
	}
	return out
}

func TestTextImporter_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextImporter{}
	part, err := p.Import(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if part.Name() != "netdocNotes" {
		t.Errorf("expected name %q, got %q", "netdocNotes", part.Name())
	}
	if title := part.Part("title"); title == nil || title.Text() != "notes" {
		t.Errorf("expected title definition %q", "notes")
	}

	got := paragraphs(t, part)
	want := []string{
		"First paragraph line one.\nFirst paragraph line two.\n",
		"Second paragraph.\n",
		"Third paragraph.\n",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, got[i])
		}
	}
	if part.Parts()[1].Name() != "netdocParagraph1" {
		t.Errorf("unexpected block name %q", part.Parts()[1].Name())
	}
}

func TestTextImporter_EmptyInput(t *testing.T) {
	p := &TextImporter{}
	part, err := p.Import(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := paragraphs(t, part); len(got) != 0 {
		t.Errorf("expected 0 paragraphs for empty input, got %d", len(got))
	}
	if part.Modified() {
		t.Errorf("imported blocks start unmodified")
	}
}

func TestTextImporter_MultipleBlankLines(t *testing.T) {
	// Multiple consecutive blank lines should not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextImporter{}
	part, err := p.Import(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := paragraphs(t, part); len(got) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(got))
	}
}

func TestTextImporter_MarkupLinesAreEscaped(t *testing.T) {
	input := "\\title{not a definition}\nstill text"
	p := &TextImporter{}
	part, err := p.Import(strings.NewReader(input), "markup.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := paragraphs(t, part)
	if len(got) != 1 || !strings.HasPrefix(got[0], " \\title{") {
		t.Errorf("expected the markup line to be indented, got %q", got)
	}
}
