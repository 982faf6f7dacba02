// Package extract turns uploaded documents into plain text.
package extract

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var ErrUnsupportedFormat = goerr.New("unsupported document format")

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract picks the format from the file extension, falling back to the MIME type.
func (e *Extractor) Extract(fileName, mimeType string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" && mimeType != "" {
		if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text by extension, including the leading dot.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(content)
	case ".html", ".htm":
		text, err = extractHTML(content)
	case ".txt", ".md", ".markdown", ".csv", "":
		text, err = extractPlain(content)
	default:
		return "", goerr.Wrap(ErrUnsupportedFormat, "cannot extract text", goerr.V("ext", ext))
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
