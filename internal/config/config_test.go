package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TESSERACT_URL", "")
	t.Setenv("TESSERACT_LANGUAGES", "")
	t.Setenv("OCR_REQUESTS_PER_SEC", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("RETRY_MAX_ATTEMPTS", "")

	cfg := Load()
	if cfg.TesseractURL != "http://localhost:8884" {
		t.Fatalf("expected default tesseract url, got %q", cfg.TesseractURL)
	}
	if cfg.TesseractLanguages != "eng" {
		t.Fatalf("expected default languages eng, got %q", cfg.TesseractLanguages)
	}
	if cfg.OCRRequestsPerSec != 2 {
		t.Fatalf("expected default ocr rate 2, got %v", cfg.OCRRequestsPerSec)
	}
	if cfg.NATSSubject != "reports.ingest" {
		t.Fatalf("expected default subject reports.ingest, got %q", cfg.NATSSubject)
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Fatalf("expected default retry attempts 3, got %d", cfg.RetryMaxAttempts)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("TESSERACT_URL", "http://ocr:9000")
	t.Setenv("TESSERACT_LANGUAGES", "eng+tel")
	t.Setenv("OCR_REQUESTS_PER_SEC", "0.5")
	t.Setenv("BREAKER_ENABLED", "false")
	t.Setenv("CATALOG_PATH", "/etc/labscan/catalog.yaml")

	cfg := Load()
	if cfg.TesseractURL != "http://ocr:9000" {
		t.Fatalf("expected tesseract url override, got %q", cfg.TesseractURL)
	}
	if cfg.TesseractLanguages != "eng+tel" {
		t.Fatalf("expected languages override, got %q", cfg.TesseractLanguages)
	}
	if cfg.OCRRequestsPerSec != 0.5 {
		t.Fatalf("expected ocr rate 0.5, got %v", cfg.OCRRequestsPerSec)
	}
	if cfg.BreakerEnabled {
		t.Fatal("expected breaker disabled")
	}
	if cfg.CatalogPath != "/etc/labscan/catalog.yaml" {
		t.Fatalf("expected catalog path override, got %q", cfg.CatalogPath)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("OCR_REQUESTS_PER_SEC", "fast")
	t.Setenv("RETRY_MAX_ATTEMPTS", "many")

	cfg := Load()
	if cfg.OCRRequestsPerSec != 2 {
		t.Fatalf("expected fallback ocr rate 2, got %v", cfg.OCRRequestsPerSec)
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Fatalf("expected fallback retry attempts 3, got %d", cfg.RetryMaxAttempts)
	}
}
