package texdoc

import (
	"strings"
	"unicode"

	"github.com/dgallion1/netdoc/internal/docpart"
)

// NewDocument returns an empty document root for target.
func NewDocument(target docpart.Target, version string) *docpart.Document {
	if version == "" {
		version = DefaultVersion
	}
	d := docpart.NewDocument(DocumentName, target)
	d.SetVersion(version)
	return d
}

// NewBlock returns an empty block container. Names without the netdoc
// prefix are converted with BlockName.
func NewBlock(name string) *docpart.Linear {
	if !validBlockName.MatchString(name) {
		name = BlockName(name)
	}
	return docpart.NewLinear(name)
}

// NewDefinition returns a named scalar definition.
func NewDefinition(name, text string) *docpart.Leaf {
	return docpart.NewLeaf(name, text)
}

// NewText returns an anonymous free-text fragment.
func NewText(text string) *docpart.Leaf {
	return docpart.NewLeaf("", text)
}

// BlockName derives a block name from a human title:
// "Firing rules (v2)" becomes "netdocFiringRulesV2".
func BlockName(title string) string {
	var b strings.Builder
	b.WriteString("netdoc")
	upper := true
	for _, r := range title {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if upper {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
			upper = false
		default:
			upper = true
		}
	}
	if b.Len() == len("netdoc") {
		b.WriteString("Section")
	}
	return b.String()
}

// ValidDefinitionName reports whether name can be written as a scalar
// definition.
func ValidDefinitionName(name string) bool {
	return validScalarName.MatchString(name) && name != "begin" && name != "end"
}

// ValidBlockName reports whether name can be written as a block.
func ValidBlockName(name string) bool {
	return validBlockName.MatchString(name)
}
