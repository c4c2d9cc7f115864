package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/netdoc/internal/docpart"
)

// TextImporter handles plain text files. Each paragraph becomes its own
// block so the paragraphs stay apart in the TeX form.
type TextImporter struct{}

func (p *TextImporter) Import(r io.Reader, filename string) (docpart.Part, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	b := newSectionBuilder(titleFor(filename))
	for i, para := range paragraphs {
		addTextBlock(b.root, fmt.Sprintf("netdocParagraph%d", i+1), para)
	}
	return b.finish(), nil
}
