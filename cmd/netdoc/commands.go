package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/importer"
	"github.com/dgallion1/netdoc/internal/texdoc"
)

func parseFile(path string) (docpart.Part, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return texdoc.Parse(f)
}

func checkFile(w io.Writer, path string) error {
	p, err := parseFile(path)
	if err != nil {
		return err
	}
	count := 0
	docpart.Walk(p, func(docpart.Part, int) bool {
		count++
		return true
	})
	fmt.Fprintf(w, "%s: ok (%d parts)\n", path, count)
	return nil
}

func formatFile(w io.Writer, path string, inPlace bool) error {
	p, err := parseFile(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := texdoc.Write(&buf, p); err != nil {
		return err
	}
	if !inPlace {
		_, err := w.Write(buf.Bytes())
		return err
	}
	return writeFile(path, buf.Bytes())
}

func printTree(w io.Writer, path string) error {
	p, err := parseFile(path)
	if err != nil {
		return err
	}
	docpart.Walk(p, func(part docpart.Part, depth int) bool {
		indent := strings.Repeat("  ", depth)
		switch {
		case isContainer(part):
			fmt.Fprintf(w, "%s%s/\n", indent, part.Name())
		case part.Name() == "":
			fmt.Fprintf(w, "%s(text) %q\n", indent, abbreviate(part.Text(), 40))
		default:
			fmt.Fprintf(w, "%s%s = %q\n", indent, part.Name(), abbreviate(part.Text(), 40))
		}
		return true
	})
	return nil
}

func importFile(w io.Writer, path, into string, pdftotext bool) error {
	imp, err := importer.ForFile(path, importer.Options{PDFFallbackPdftotext: pdftotext})
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	block, err := imp.Import(f, path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	if into == "" {
		return texdoc.Write(w, block)
	}

	doc, err := openDocument(into)
	if err != nil {
		return err
	}
	if err := doc.SetPart(block); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := texdoc.Write(&buf, doc); err != nil {
		return err
	}
	if err := writeFile(into, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: set %s\n", into, block.Name())
	return nil
}

// openDocument parses path as a document, starting a new one when the
// file does not exist.
func openDocument(path string) (*docpart.Document, error) {
	p, err := parseFile(path)
	if os.IsNotExist(err) {
		return texdoc.NewDocument(nil, ""), nil
	}
	if err != nil {
		return nil, err
	}
	if doc, ok := p.(*docpart.Document); ok {
		return doc, nil
	}
	doc := texdoc.NewDocument(nil, p.Version())
	if err := doc.AppendPart(p); err != nil {
		return nil, err
	}
	return doc, nil
}

func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}

func isContainer(p docpart.Part) bool {
	_, ok := p.(docpart.Container)
	return ok
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
