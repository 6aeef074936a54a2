package pdfextract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"

	"pdfsearch/internal/pkg/textnorm"
)

// ErrExtraction is returned when the byte stream cannot be read as a PDF.
var ErrExtraction = errors.New("pdf extraction failed")

// Page is the normalized text of one physical page. Number is 1-based.
type Page struct {
	Number int
	Text   string
}

// Decoder turns raw PDF bytes into the raw text of every page, in physical order.
type Decoder interface {
	Decode(content []byte) ([]string, error)
}

// Extractor produces numbered, normalized pages from raw PDF bytes.
type Extractor struct {
	decoder Decoder
}

// New returns an Extractor backed by decoder, or by PDFDecoder when nil.
func New(decoder Decoder) *Extractor {
	if decoder == nil {
		decoder = PDFDecoder{}
	}
	return &Extractor{decoder: decoder}
}

// Extract decodes content and numbers its pages 1..n by order of appearance,
// ignoring any page labels embedded in the document.
func (e *Extractor) Extract(content []byte) ([]Page, error) {
	raw, err := e.decoder.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrExtraction)
	}

	pages := make([]Page, len(raw))
	for i, text := range raw {
		pages[i] = Page{
			Number: i + 1,
			Text:   textnorm.NormalizeString(text),
		}
	}
	return pages, nil
}

// PDFDecoder decodes PDFs with github.com/ledongthuc/pdf.
type PDFDecoder struct{}

// Decode reads every page's plain text. A page without content yields "".
func (PDFDecoder) Decode(content []byte) (texts []string, err error) {
	if len(content) == 0 {
		return nil, errors.New("empty pdf content")
	}
	defer func() {
		if r := recover(); r != nil {
			texts = nil
			err = fmt.Errorf("decode pdf panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf failed: %w", err)
	}

	total := reader.NumPage()
	texts = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read page %d text failed: %w", i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}
