package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/homahealth/labscan/internal/core/domain"
)

// Extractor reads the embedded text layer of a PDF. Scanned PDFs without a
// text layer come back empty and are rejected upstream.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Recognize(_ context.Context, file domain.SourceFile, data io.Reader) (domain.RecognizedText, error) {
	content, err := io.ReadAll(data)
	if err != nil {
		return domain.RecognizedText{}, fmt.Errorf("read pdf data: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return domain.RecognizedText{}, fmt.Errorf("parse pdf %q: %w", file.Filename, err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return domain.RecognizedText{}, fmt.Errorf("extract pdf text %q: %w", file.Filename, err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, textReader); err != nil {
		return domain.RecognizedText{}, fmt.Errorf("read pdf text %q: %w", file.Filename, err)
	}

	// The text layer is exact, so confidence is pinned at 100.
	return domain.RecognizedText{Text: b.String(), Confidence: 100}, nil
}
