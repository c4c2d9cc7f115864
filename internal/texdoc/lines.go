package texdoc

import (
	"bufio"
	"io"
)

// markLimit is the reader buffer size, the most a single peek can hold
// without growing.
const markLimit = 8192

// lineReader hands out lines with their line breaks and can look at the
// next line without consuming it.
type lineReader struct {
	r       *bufio.Reader
	peeked  string
	hasPeek bool
	err     error
	line    int // number of the last consumed line
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, markLimit)}
}

// peek returns the next line without consuming it. It returns io.EOF
// once the input is exhausted.
func (lr *lineReader) peek() (string, error) {
	if lr.hasPeek {
		return lr.peeked, nil
	}
	if lr.err != nil {
		return "", lr.err
	}
	s, err := lr.r.ReadString('\n')
	if err != nil {
		lr.err = err
		if s == "" {
			return "", err
		}
	}
	lr.peeked, lr.hasPeek = s, true
	return s, nil
}

// next consumes and returns the next line.
func (lr *lineReader) next() (string, error) {
	s, err := lr.peek()
	if err != nil {
		return "", err
	}
	lr.peeked, lr.hasPeek = "", false
	lr.line++
	return s, nil
}
