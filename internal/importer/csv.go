package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/texdoc"
)

// csvBatchSize is the number of data rows per block.
const csvBatchSize = 20

// CSVImporter handles CSV files. The first row holds the headers; data
// rows are grouped into blocks named after their row range.
type CSVImporter struct{}

func (p *CSVImporter) Import(r io.Reader, filename string) (docpart.Part, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	b := newSectionBuilder(titleFor(filename))
	if len(records) == 0 {
		return b.finish(), nil
	}

	headers := records[0]
	dataRows := records[1:]
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range dataRows[i:end] {
			cells := make([]string, len(row))
			for j, cell := range row {
				if j < len(headers) {
					cells[j] = headers[j] + ": " + cell
				} else {
					cells[j] = cell
				}
			}
			text.WriteString(strings.Join(cells, ", ") + "\n")
		}

		// Rows are 1-indexed and the header is row 1.
		title := fmt.Sprintf("Rows %d-%d", i+2, end+1)
		block := newTitledBlock(b.root, title)
		block.AppendPart(texdoc.NewText(texdoc.EscapeBody(text.String())))
	}
	return b.finish(), nil
}
