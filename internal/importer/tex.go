package importer

import (
	"io"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/texdoc"
)

// TeXImporter reads NetDoc TeX. A whole document is unwrapped into a
// block named after the file so it can be nested in another document.
type TeXImporter struct{}

func (p *TeXImporter) Import(r io.Reader, filename string) (docpart.Part, error) {
	part, err := texdoc.Parse(r)
	if err != nil {
		return nil, err
	}
	doc, ok := part.(*docpart.Document)
	if !ok {
		return part, nil
	}
	block := texdoc.NewBlock(titleFor(filename))
	block.SetVersion(doc.Version())
	for doc.Len() > 0 {
		child, err := doc.RemovePartAt(0)
		if err != nil {
			return nil, err
		}
		if err := block.AppendPart(child); err != nil {
			return nil, err
		}
	}
	block.SetModified(false)
	return block, nil
}
