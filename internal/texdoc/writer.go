package texdoc

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/netdoc/internal/docpart"
)

// ErrUnwritable is returned for parts whose names have no TeX form.
var ErrUnwritable = errors.New("part cannot be written")

var (
	validBlockName  = regexp.MustCompile(`^netdoc[A-Za-z0-9]*$`)
	validScalarName = regexp.MustCompile(`^[A-Za-z@]+$`)
)

// Write serializes p. Anonymous leaves are written as free text, named
// leaves as \name{value} (or as a block when the name is a block name),
// containers as \begin{name} ... \end{name}, and a *docpart.Document
// additionally gets its version line. Definitions always start on a new
// line, so a line break may be inserted after text that lacks one.
func Write(w io.Writer, p docpart.Part) error {
	tw := &texWriter{w: w, atLineStart: true}
	if doc, ok := p.(*docpart.Document); ok {
		version := doc.Version()
		if version == "" {
			version = DefaultVersion
		}
		tw.write("% " + version + "\n")
	}
	tw.part(p)
	return tw.err
}

// String returns the TeX form of p, or the error text if p cannot be
// written.
func String(p docpart.Part) string {
	var b strings.Builder
	if err := Write(&b, p); err != nil {
		return err.Error()
	}
	return b.String()
}

type texWriter struct {
	w           io.Writer
	atLineStart bool
	err         error
}

func (tw *texWriter) write(s string) {
	if tw.err != nil || s == "" {
		return
	}
	_, tw.err = io.WriteString(tw.w, s)
	tw.atLineStart = strings.HasSuffix(s, "\n")
}

func (tw *texWriter) newline() {
	if !tw.atLineStart {
		tw.write("\n")
	}
}

func (tw *texWriter) part(p docpart.Part) {
	if tw.err != nil {
		return
	}
	name := p.Name()
	c, isContainer := p.(docpart.Container)
	switch {
	case isContainer:
		if _, isDoc := p.(*docpart.Document); isDoc {
			name = DocumentName
		}
		if !validBlockName.MatchString(name) {
			tw.err = fmt.Errorf("%w: %q is not a block name", ErrUnwritable, name)
			return
		}
		tw.newline()
		tw.write(beginPrefix + name + "}\n")
		for _, child := range c.Parts() {
			tw.part(child)
		}
		tw.newline()
		tw.write(`\end{` + name + "}\n")
	case name == "":
		tw.write(EscapeBody(p.Text()))
	case validBlockName.MatchString(name):
		// A collapsed block: one text fragment between begin and end.
		tw.newline()
		tw.write(beginPrefix + name + "}\n")
		tw.write(EscapeBody(p.Text()))
		tw.newline()
		tw.write(`\end{` + name + "}\n")
	case validScalarName.MatchString(name) && name != "begin" && name != "end":
		tw.newline()
		tw.write(`\` + name + "{" + EscapeValue(p.Text()) + "}\n")
	default:
		tw.err = fmt.Errorf("%w: %q is not a definition name", ErrUnwritable, name)
	}
}

// EscapeValue escapes every closing brace not already preceded by a
// backslash, so the value can sit between { and }. A trailing backslash
// would escape the closing brace of the definition and has no escape of
// its own, so a space is appended after it.
func EscapeValue(s string) string {
	if strings.HasSuffix(s, `\`) {
		s += " "
	}
	if !strings.Contains(s, "}") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '}' && (i == 0 || s[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// EscapeBody indents lines of free text that would otherwise be read as
// a definition or a block end.
func EscapeBody(s string) string {
	lines := strings.SplitAfter(s, "\n")
	changed := false
	for i, line := range lines {
		if isDefinitionLine(line) || strings.HasPrefix(line, `\end{`) {
			lines[i] = " " + line
			changed = true
		}
	}
	if !changed {
		return s
	}
	return strings.Join(lines, "")
}
