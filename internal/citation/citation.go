// Package citation models the citation objects produced by the upstream
// retrieval pipeline. Only the quote selector of a text locator feeds the
// anchoring subsystem; web locators are opened externally.
package citation

import (
	"encoding/json"
	"fmt"

	"github.com/kk-code-lab/citemark/internal/anchor"
)

// Citation is one retrieved reference to a source document.
type Citation struct {
	DocID    string  `json:"doc_id"`
	DocTitle string  `json:"doc_title"`
	ChunkID  string  `json:"chunk_id"`
	Score    float64 `json:"score"`
	Excerpt  string  `json:"excerpt"`
	Locator  Locator `json:"locator"`
}

// LocatorKind tags the locator variant.
type LocatorKind int

const (
	LocatorNone LocatorKind = iota
	LocatorEPUBText
	LocatorPDFText
	LocatorWebURL
)

// EPUBText points into an EPUB rendering by chapter href.
type EPUBText struct {
	Href     string          `json:"href"`
	Selector anchor.Selector `json:"selector"`
}

// PDFText points into a PDF rendering by page number.
type PDFText struct {
	Page     int             `json:"page"`
	Selector anchor.Selector `json:"selector"`
}

// WebURL points outside any local document; it bypasses anchoring entirely.
type WebURL struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	RetrievedAt string `json:"retrieved_at,omitempty"`
}

// Locator is a tagged variant over the three locator forms. Exactly one of
// the pointers is set for a valid locator.
type Locator struct {
	Kind LocatorKind
	EPUB *EPUBText
	PDF  *PDFText
	Web  *WebURL
}

// locatorJSON is the wire shape: a single-key object naming the variant.
type locatorJSON struct {
	EPUBText *EPUBText `json:"epub_text,omitempty"`
	PDFText  *PDFText  `json:"pdf_text,omitempty"`
	WebURL   *WebURL   `json:"web_url,omitempty"`
}

// UnmarshalJSON decodes the tagged variant, rejecting objects that carry
// zero or multiple variant keys.
func (l *Locator) UnmarshalJSON(data []byte) error {
	var raw locatorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Locator{}
	count := 0
	if raw.EPUBText != nil {
		l.Kind, l.EPUB = LocatorEPUBText, raw.EPUBText
		count++
	}
	if raw.PDFText != nil {
		l.Kind, l.PDF = LocatorPDFText, raw.PDFText
		count++
	}
	if raw.WebURL != nil {
		l.Kind, l.Web = LocatorWebURL, raw.WebURL
		count++
	}
	if count != 1 {
		return fmt.Errorf("locator must carry exactly one variant, got %d", count)
	}
	return nil
}

// MarshalJSON encodes the tagged variant back to its single-key form.
func (l Locator) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LocatorEPUBText:
		return json.Marshal(locatorJSON{EPUBText: l.EPUB})
	case LocatorPDFText:
		return json.Marshal(locatorJSON{PDFText: l.PDF})
	case LocatorWebURL:
		return json.Marshal(locatorJSON{WebURL: l.Web})
	}
	return nil, fmt.Errorf("locator has no variant set")
}

// Selector returns the quote selector of a text locator. ok is false for
// web locators and empty locators, which never reach the anchoring core.
func (l Locator) Selector() (anchor.Selector, bool) {
	switch l.Kind {
	case LocatorEPUBText:
		return l.EPUB.Selector, true
	case LocatorPDFText:
		return l.PDF.Selector, true
	}
	return anchor.Selector{}, false
}

// Parse decodes a Citation from JSON.
func Parse(data []byte) (Citation, error) {
	var c Citation
	if err := json.Unmarshal(data, &c); err != nil {
		return Citation{}, fmt.Errorf("parse citation: %w", err)
	}
	return c, nil
}
