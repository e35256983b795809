package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how much of the input is inspected before deciding on a charset.
const sniffLen = 4096

var boms = []struct {
	prefix []byte
	enc    xenc.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, nil},
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// legacy maps chardet results to single-byte decoders. Spreadsheet exports
// from Excel on Windows land here.
var legacy = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// NewUTF8Reader returns a reader yielding r decoded to UTF-8.
//
// A byte order mark wins; a UTF-8 BOM is dropped. Input that is already valid
// UTF-8 passes through. Otherwise chardet picks a legacy charset, with
// Windows-1252 as the fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.prefix) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), nil
	}

	if utf8.Valid(trimPartialRune(head)) {
		return br, nil
	}

	return transform.NewReader(br, detect(head).NewDecoder()), nil
}

func detect(head []byte) xenc.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		if result.Charset == "UTF-8" {
			return xenc.Nop
		}

		if enc, ok := legacy[result.Charset]; ok {
			return enc
		}
	}

	return charmap.Windows1252
}

// trimPartialRune drops a multi-byte sequence cut off at the end of the sniff window.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		c := b[len(b)-i]
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
