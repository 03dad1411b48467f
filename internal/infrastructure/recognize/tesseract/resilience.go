package tesseract

import (
	"context"
	"errors"
	"net"

	"github.com/homahealth/labscan/internal/infrastructure/resilience"
)

// classifyOCRError treats network failures and 5xx responses as retryable;
// 4xx responses mean the image itself is the problem and retrying cannot
// help.
func classifyOCRError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return resilience.ErrorClassification{
			Retryable:     statusErr.status >= 500,
			RecordFailure: statusErr.status >= 500,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     true,
		RecordFailure: true,
	}
}
