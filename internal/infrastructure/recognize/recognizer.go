package recognize

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/core/ports"
)

// Dispatcher routes each source file to the recognizer for its MIME type:
// PDFs to the text-layer extractor, images to the OCR client, everything
// else to the plain text reader.
type Dispatcher struct {
	pdf   ports.TextRecognizer
	image ports.TextRecognizer
	plain ports.TextRecognizer
}

func NewDispatcher(pdf, image, plain ports.TextRecognizer) *Dispatcher {
	return &Dispatcher{pdf: pdf, image: image, plain: plain}
}

func (d *Dispatcher) Recognize(ctx context.Context, file domain.SourceFile, data io.Reader) (domain.RecognizedText, error) {
	mime := strings.ToLower(file.MimeType)

	switch {
	case mime == "application/pdf" || strings.HasSuffix(strings.ToLower(file.Filename), ".pdf"):
		return d.pdf.Recognize(ctx, file, data)
	case strings.HasPrefix(mime, "image/"):
		if d.image == nil {
			return domain.RecognizedText{}, fmt.Errorf("no ocr backend configured for %q", file.Filename)
		}
		return d.image.Recognize(ctx, file, data)
	default:
		return d.plain.Recognize(ctx, file, data)
	}
}
