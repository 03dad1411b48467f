package plaintext

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/homahealth/labscan/internal/core/domain"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Recognize(_ context.Context, file domain.SourceFile, data io.Reader) (domain.RecognizedText, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return domain.RecognizedText{}, fmt.Errorf("read source file: %w", err)
	}

	if !utf8.Valid(raw) {
		return domain.RecognizedText{}, fmt.Errorf("file %q is not valid utf-8 text", file.Filename)
	}

	return domain.RecognizedText{
		Text:       strings.TrimSpace(string(raw)),
		Confidence: 100,
	}, nil
}
