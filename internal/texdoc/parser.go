// Package texdoc reads and writes NetDoc documents in their TeX-like
// text form:
//
//	% NetDoc 1.0
//	\begin{netdocDocument}
//	\title{Place p1}
//	\begin{netdocSection}
//	free text, kept as is
//	\end{netdocSection}
//	\end{netdocDocument}
package texdoc

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/netdoc/internal/docpart"
)

const (
	// DocumentName is the reserved name of a document root block.
	DocumentName = "netdocDocument"
	// DefaultVersion is written when a document carries no version.
	DefaultVersion = "NetDoc 1.0"
)

// ErrParse matches every *ParseError.
var ErrParse = errors.New("document parse error")

// ParseError reports malformed input.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", ErrParse, e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

var (
	blockLine   = regexp.MustCompile(`^\\begin\{netdoc[A-Za-z0-9]*\}`)
	scalarLine  = regexp.MustCompile(`^\\([A-Za-z@]+)\{`)
	versionLine = regexp.MustCompile(`^%\s*(\S.*?)\s*$`)
)

const beginPrefix = `\begin{`

// Parse reads a NetDoc document. The input is free preamble text
// followed by definitions. A single definition is returned as is, a
// netdocDocument block as a *docpart.Document, and several top-level
// definitions are gathered under a new *docpart.Document. The returned
// tree is unmodified.
//
// Only blocks hold free text. At the top level any text outside a
// definition is preamble and is dropped, including text following the
// closing brace of a scalar definition.
//
// Malformed input yields a *ParseError and no tree. Errors from r are
// returned unchanged.
func Parse(r io.Reader) (docpart.Part, error) {
	p := &parser{lr: newLineReader(r)}
	root, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	version := p.version
	if version == "" {
		version = DefaultVersion
	}
	docpart.Walk(root, func(part docpart.Part, _ int) bool {
		part.SetVersion(version)
		return true
	})
	root.SetModified(false)
	return root, nil
}

type parser struct {
	lr      *lineReader
	version string
}

func (p *parser) parseDocument() (docpart.Part, error) {
	var defs []docpart.Part
	for {
		line, err := p.lr.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isDefinitionLine(line) {
			// Trailing text after a top-level scalar is preamble.
			def, _, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
			continue
		}
		p.lr.next()
		if len(defs) == 0 && p.version == "" {
			if m := versionLine.FindStringSubmatch(strings.TrimRight(line, "\r\n")); m != nil {
				p.version = m[1]
			}
		}
	}

	switch len(defs) {
	case 0:
		return nil, p.errorf("no definition found")
	case 1:
		return defs[0], nil
	}
	doc := docpart.NewDocument(DocumentName, nil)
	for _, def := range defs {
		if err := doc.AppendPart(def); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// parseDefinition consumes the definition starting on the next line. It
// returns the part and whatever followed the closing brace on its last
// line.
func (p *parser) parseDefinition() (docpart.Part, string, error) {
	line, err := p.lr.next()
	if err != nil {
		return nil, "", err
	}
	if blockLine.MatchString(line) {
		part, err := p.parseBlock(line)
		return part, "", err
	}
	m := scalarLine.FindStringSubmatch(line)
	if m == nil {
		return nil, "", p.errorf("expected a definition")
	}
	name := m[1]
	value, rest, err := p.readValue(line[len(m[0]):], name)
	if err != nil {
		return nil, "", err
	}
	return docpart.NewLeaf(name, value), rest, nil
}

// readValue scans from s, and further lines if needed, for the first
// closing brace not preceded by a backslash.
func (p *parser) readValue(s, name string) (value, rest string, err error) {
	var buf strings.Builder
	for {
		if i := closingBrace(s, buf.String()); i >= 0 {
			buf.WriteString(s[:i])
			return buf.String(), s[i+1:], nil
		}
		buf.WriteString(s)
		s, err = p.lr.next()
		if err == io.EOF {
			return "", "", p.errorf("unterminated definition \\%s", name)
		}
		if err != nil {
			return "", "", err
		}
	}
}

func closingBrace(s, before string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '}' {
			continue
		}
		prev := byte(0)
		if i > 0 {
			prev = s[i-1]
		} else if before != "" {
			prev = before[len(before)-1]
		}
		if prev != '\\' {
			return i
		}
	}
	return -1
}

// parseBlock reads a \begin{netdoc...} block whose first line has been
// consumed. The body alternates anonymous text fragments and nested
// definitions until the matching \end line.
func (p *parser) parseBlock(first string) (docpart.Part, error) {
	name, rest, err := p.readValue(first[len(beginPrefix):], "begin")
	if err != nil {
		return nil, err
	}
	end := `\end{` + name + `}`

	var parts []docpart.Part
	var text strings.Builder
	flushText := func() {
		if text.Len() > 0 {
			parts = append(parts, docpart.NewLeaf("", text.String()))
			text.Reset()
		}
	}
	if !isLineBreak(rest) {
		text.WriteString(rest)
	}

	for {
		line, err := p.lr.peek()
		if err == io.EOF {
			return nil, p.errorf("unterminated block %s", name)
		}
		if err != nil {
			return nil, err
		}
		switch {
		case strings.HasPrefix(line, end):
			p.lr.next()
			flushText()
			return materialize(name, parts), nil
		case isDefinitionLine(line):
			flushText()
			def, rest, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}
			parts = append(parts, def)
			if !isLineBreak(rest) {
				text.WriteString(rest)
			}
		default:
			p.lr.next()
			text.WriteString(line)
		}
	}
}

// materialize turns a block body into a part. A body of exactly one text
// fragment collapses to a leaf carrying the block name; an empty body and
// the document root stay containers.
func materialize(name string, parts []docpart.Part) docpart.Part {
	if name != DocumentName && len(parts) == 1 && parts[0].Name() == "" {
		return docpart.NewLeaf(name, parts[0].Text())
	}
	var c docpart.Container
	if name == DocumentName {
		c = docpart.NewDocument(name, nil)
	} else {
		c = docpart.NewLinear(name)
	}
	for _, part := range parts {
		// Parts come fresh from the parser and cannot be rejected.
		_ = c.AppendPart(part)
	}
	return c
}

func isDefinitionLine(line string) bool {
	if blockLine.MatchString(line) {
		return true
	}
	m := scalarLine.FindStringSubmatch(line)
	return m != nil && m[1] != "begin" && m[1] != "end"
}

func isLineBreak(s string) bool {
	return s == "" || s == "\n" || s == "\r\n"
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.lr.line, Reason: fmt.Sprintf(format, args...)}
}
