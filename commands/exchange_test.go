package commands

import (
	"strings"
	"testing"
)

const quotePageFixture = `<!DOCTYPE html><html><body>
<main>
  <div class="rPF6Lc">
    <div class="ln0Gqe">
      <div class="AHmHk"><div class="YMlKec fxKbKc">147.1350</div></div>
    </div>
  </div>
</main>
</body></html>`

const quotePageGrouped = `<html><body>
<div class="YMlKec fxKbKc">1,234.56</div>
</body></html>`

func TestParseQuoteRate(t *testing.T) {
	rate, err := parseQuoteRate(strings.NewReader(quotePageFixture))
	if err != nil {
		t.Fatalf("parseQuoteRate: %v", err)
	}
	if rate != 147.1350 {
		t.Errorf("rate = %v, want 147.1350", rate)
	}
}

func TestParseQuoteRateThousandsSeparator(t *testing.T) {
	rate, err := parseQuoteRate(strings.NewReader(quotePageGrouped))
	if err != nil {
		t.Fatalf("parseQuoteRate: %v", err)
	}
	if rate != 1234.56 {
		t.Errorf("rate = %v, want 1234.56", rate)
	}
}

func TestParseQuoteRateMissingNode(t *testing.T) {
	if _, err := parseQuoteRate(strings.NewReader("<html><body>not a quote page</body></html>")); err == nil {
		t.Fatal("expected an error when the rate node is absent")
	}
}
