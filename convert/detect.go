package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// headerSize is how much of the file is looked at to decide what it is.
const headerSize = 512

var documentExts = []string{".json", ".yaml", ".yml"}

// documentType is registered with filetype so content tree documents could be
// recognized the same way as other formats.
var documentType = filetype.NewType("onepaper", "application/x-onepaper-document")

func init() {
	filetype.AddMatcher(documentType, matchDocument)
}

// matchDocument recognizes text which looks like JSON or YAML content tree.
// Buffer is expected to be UTF-8 without BOM.
func matchDocument(buf []byte) bool {
	buf = bytes.TrimLeft(buf, " \t\r\n")
	if len(buf) == 0 || bytes.IndexByte(buf, 0) >= 0 {
		return false
	}
	switch {
	case buf[0] == '{' || buf[0] == '[':
		return true
	case buf[0] == '#' || bytes.HasPrefix(buf, []byte("---")) || bytes.HasPrefix(buf, []byte("%YAML")):
		return true
	}
	line, _, _ := bytes.Cut(buf, []byte{'\n'})
	return bytes.Contains(line, []byte{':'})
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for BOM. UTF-32LE must be checked before UTF-16LE, they
// share first two bytes.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 without BOM.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	}
	// this should never happen
	panic("unexpected source encoding")
}

// readSource reads complete document converting it to UTF-8. Documents
// without BOM which are not valid UTF-8 are decoded with code page, if one
// was specified.
func readSource(r io.Reader, enc srcEncoding, cp encoding.Encoding) ([]byte, error) {
	data, err := io.ReadAll(selectReader(r, enc))
	if err != nil {
		return nil, err
	}
	if enc != encUnknown || utf8.Valid(data) {
		return data, nil
	}
	if cp == nil {
		return nil, errors.New("document is not valid UTF-8 and no code page was specified")
	}
	return cp.NewDecoder().Bytes(data)
}

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

func hasDocumentExt(name string) bool {
	return slices.Contains(documentExts, strings.ToLower(filepath.Ext(name)))
}

// isDocument checks file header. For BOM marked files the header is decoded
// first, a partial trailing character is of no consequence.
func isDocument(header []byte) (bool, srcEncoding) {
	enc := detectUTF(header)
	text := header
	if enc != encUnknown {
		text, _ = io.ReadAll(selectReader(bytes.NewReader(header), enc))
	}
	return filetype.Is(text, documentType.Extension), enc
}

func isDocumentFile(path string) (bool, srcEncoding, error) {
	if !hasDocumentExt(path) {
		return false, encUnknown, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, encUnknown, err
	}
	defer f.Close()

	header, err := readHeader(f)
	if err != nil {
		return false, encUnknown, err
	}
	ok, enc := isDocument(header)
	return ok, enc, nil
}

func isDocumentInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !hasDocumentExt(f.Name) {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	header, err := readHeader(r)
	if err != nil {
		return false, encUnknown, err
	}
	ok, enc := isDocument(header)
	return ok, enc, nil
}

func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	header, err := readHeader(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(header, "zip"), nil
}
