package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

const (
	// maxDocumentSize caps how much of a document is loaded. Anchoring is
	// linear in content length; 8 MiB covers any realistic chapter.
	maxDocumentSize = 8 << 20

	sniffSampleSize              = 4096
	nonPrintableThresholdPercent = 30
)

type docEncoding int

const (
	encodingPlain docEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// Load reads a document from disk, rejects binary content, decodes Unicode
// BOM encodings, folds the text to NFC so selector and content compare in
// one form, and parses it into a content tree based on the file extension.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if len(raw) > maxDocumentSize {
		return nil, fmt.Errorf("document %s exceeds %d bytes", path, maxDocumentSize)
	}
	if !isTextContent(raw) {
		return nil, fmt.Errorf("document %s looks binary", path)
	}

	text := norm.NFC.String(decodeText(raw))

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc = ParseMarkdown(text)
	case ".html", ".htm", ".xhtml":
		doc, err = ParseHTML(text)
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
	default:
		doc = ParsePlainText(text)
	}
	doc.Path = path
	if doc.Title == "" {
		doc.Title = filepath.Base(path)
	}
	return doc, nil
}

// isTextContent sniffs the first bytes for binary markers.
func isTextContent(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	sample := content
	if len(sample) > sniffSampleSize {
		sample = sample[:sniffSampleSize]
	}
	if detectEncoding(sample) != encodingPlain {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}
	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func detectEncoding(sample []byte) docEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingPlain
}

// decodeText converts BOM-marked content to a UTF-8 string.
func decodeText(content []byte) string {
	switch detectEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:])
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
