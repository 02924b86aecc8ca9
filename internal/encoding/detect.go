// Package encoding turns spreadsheet exports of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// charsets maps chardet names to decoders. Timesheets exported on Albanian
// and Balkan desktops show up as Latin-1/1252 or Latin-2/1250.
var charsets = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-2":   charmap.ISO8859_2,
	"windows-1250": charmap.Windows1250,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// NewUTF8Reader sniffs the start of r and returns a reader producing UTF-8.
//
// A BOM decides first, then plain UTF-8 validity, then chardet. Anything
// still unknown is read as Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	case utf8.Valid(buf):
		return br, nil
	}

	return transform.NewReader(br, Detect(buf).NewDecoder()), nil
}

// Detect guesses the single-byte charset of buf.
func Detect(buf []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		if enc, ok := charsets[result.Charset]; ok {
			return enc
		}
	}

	return charmap.Windows1252
}
