package importer

import (
	"strings"
	"testing"
)

func TestHTMLImporter_TitleAndHeadings(t *testing.T) {
	input := `<html><head><title>Net Manual</title><style>p{}</style></head>
<body>
<nav>skip me</nav>
<p>Overview.</p>
<h1>Places</h1>
<p>Places hold tokens.</p>
<h2>Capacity</h2>
<ul><li>bounded</li><li>unbounded</li></ul>
<h1>Transitions</h1>
<p>Transitions fire.</p>
<script>var x = 1;</script>
</body></html>`

	p := &HTMLImporter{}
	part, err := p.Import(strings.NewReader(input), "manual.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if part.Name() != "netdocNetManual" || titleOf(part) != "Net Manual" {
		t.Errorf("expected root named from <title>, got %q titled %q", part.Name(), titleOf(part))
	}
	if !strings.Contains(part.Parts()[1].Text(), "Overview.") {
		t.Errorf("expected text before the first heading in the root block")
	}
	if strings.Contains(part.Text(), "skip me") || strings.Contains(part.Text(), "var x") {
		t.Errorf("navigation and scripts must be skipped, got %q", part.Text())
	}

	top := blocks(part)
	if len(top) != 2 || titleOf(top[0]) != "Places" || titleOf(top[1]) != "Transitions" {
		t.Fatalf("expected Places and Transitions blocks")
	}
	capacity := part.Part("netdocCapacity")
	if capacity == nil {
		t.Fatalf("expected a Capacity block")
	}
	if !strings.Contains(capacity.Text(), "bounded\n\nunbounded") {
		t.Errorf("unexpected capacity text %q", capacity.Text())
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := map[string]int{"h1": 1, "h6": 6, "h7": 0, "hr": 0, "p": 0, "header": 0}
	for tag, want := range tests {
		if got := headingLevel(tag); got != want {
			t.Errorf("headingLevel(%q) = %d, want %d", tag, got, want)
		}
	}
}
