package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRoutesLevelsToWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLoggerTo(&out, &errOut)

	logger.Info("scraped %d listings", 3)
	logger.Warn("listing fetch failed for %s", "https://x.test/detail/1")
	logger.Error("crawl failed: %s", "timeout")

	if !strings.Contains(out.String(), "scraped 3 listings") {
		t.Errorf("info output missing formatted message: %q", out.String())
	}
	if !strings.Contains(out.String(), "WARN") {
		t.Errorf("warn should go to the standard writer: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "crawl failed: timeout") {
		t.Errorf("error output missing formatted message: %q", errOut.String())
	}
	if strings.Contains(out.String(), "crawl failed") {
		t.Errorf("errors must not go to the standard writer: %q", out.String())
	}
}
