package tesseract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/infrastructure/resilience"
)

// Client talks to the tesseract OCR sidecar over HTTP. The sidecar holds the
// trained language data and does the heavy lifting; one scan can take tens of
// seconds, hence the long client timeout.
type Client struct {
	baseURL    string
	languages  string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

type Options struct {
	// RequestsPerSecond throttles calls to the sidecar; OCR is CPU-bound
	// and overload shows up as timeouts rather than errors.
	RequestsPerSecond  float64
	Burst              int
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, languages string, options Options) *Client {
	rps := options.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := options.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if languages == "" {
		languages = "eng"
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		languages:  languages,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		executor:   options.ResilienceExecutor,
	}
}

type ocrResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recognize sends one image to the sidecar and returns the recovered text
// with tesseract's mean word confidence.
func (c *Client) Recognize(ctx context.Context, file domain.SourceFile, data io.Reader) (domain.RecognizedText, error) {
	content, err := io.ReadAll(data)
	if err != nil {
		return domain.RecognizedText{}, fmt.Errorf("read image data: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.RecognizedText{}, fmt.Errorf("ocr rate limit wait: %w", err)
	}

	var result ocrResponse
	call := func(callCtx context.Context) error {
		var callErr error
		result, callErr = c.doOCR(callCtx, file.Filename, content)
		return callErr
	}

	if c.executor != nil {
		err = c.executor.Execute(ctx, "tesseract.ocr", call, classifyOCRError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.RecognizedText{}, err
	}
	return domain.RecognizedText{Text: result.Text, Confidence: result.Confidence}, nil
}

func (c *Client) doOCR(ctx context.Context, filename string, content []byte) (ocrResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return ocrResponse{}, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return ocrResponse{}, fmt.Errorf("write multipart file: %w", err)
	}
	if err := writer.WriteField("languages", c.languages); err != nil {
		return ocrResponse{}, fmt.Errorf("write languages field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return ocrResponse{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ocr", &body)
	if err != nil {
		return ocrResponse{}, fmt.Errorf("create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ocrResponse{}, fmt.Errorf("tesseract ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return ocrResponse{}, formatOCRHTTPError(resp)
	}

	var result ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ocrResponse{}, fmt.Errorf("decode ocr response: %w", err)
	}
	return result, nil
}

func formatOCRHTTPError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return &httpStatusError{status: resp.StatusCode, message: resp.Status}
	}
	return &httpStatusError{status: resp.StatusCode, message: fmt.Sprintf("%s: %s", resp.Status, msg)}
}

type httpStatusError struct {
	status  int
	message string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("tesseract ocr status: %s", e.message)
}
