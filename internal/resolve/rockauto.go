package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	rockAutoName      = "RockAuto"
	rockAutoSearchURL = "https://www.rockauto.com/en/partsearch/"

	// buyersGuideSelector is the catalog's per-part application popup; its
	// table rows carry the year-make applications for a part.
	buyersGuideSelector = "#buyersguidepopup-outer_b"

	maxResponseBytes = 5 * 1024 * 1024
)

// yearMakePattern matches application listings like "2008 HONDA" or
// "2010-FORD" in catalog markup.
var yearMakePattern = regexp.MustCompile(`\b(?:19|20)\d{2}[-\s]+([A-Z][A-Z]+)`)

// RockAutoSource resolves part numbers against the RockAuto catalog's direct
// part search.
type RockAutoSource struct {
	client  *http.Client
	baseURL string
}

// NewRockAutoSource creates the catalog source with the given request timeout.
func NewRockAutoSource(timeout time.Duration) *RockAutoSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RockAutoSource{
		baseURL: rockAutoSearchURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Name identifies this source in results and logs.
func (s *RockAutoSource) Name() string {
	return rockAutoName
}

// Lookup queries the part search page and extracts the vehicle makes listed
// in the buyers guide block. An empty slice with nil error means the source
// has no applications for this part.
func (s *RockAutoSource) Lookup(ctx context.Context, key, _ string) ([]string, error) {
	searchURL := fmt.Sprintf("%s?partnum=%s", s.baseURL, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for part %s", resp.StatusCode, key)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	makes := extractMakesFromGuide(doc)
	slog.Debug("catalog lookup finished", "source", rockAutoName, "part", key, "makes", len(makes))
	return makes, nil
}

// extractMakesFromGuide pulls manufacturer names out of the buyers guide
// block. Table cells are scanned for year-make application patterns first,
// then for standalone known-make words.
func extractMakesFromGuide(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var makes []string

	record := func(raw string) {
		normalized := normalizeMake(raw)
		if !isValidMake(normalized) || seen[normalized] {
			return
		}
		seen[normalized] = true
		makes = append(makes, normalized)
	}

	doc.Find(buyersGuideSelector).Each(func(_ int, guide *goquery.Selection) {
		text := strings.TrimSpace(guide.Text())
		if strings.Contains(strings.ToLower(text), "no applications found") {
			return
		}

		guide.Find("tr td").Each(func(_ int, cell *goquery.Selection) {
			cellText := strings.ToUpper(strings.TrimSpace(cell.Text()))
			if cellText == "" {
				return
			}

			for _, match := range yearMakePattern.FindAllStringSubmatch(cellText, -1) {
				if isKnownMake(match[1]) {
					record(match[1])
				}
			}

			for _, word := range strings.Fields(cellText) {
				word = strings.Trim(word, ".,;:()[]")
				if isKnownMake(word) {
					record(word)
				}
			}
		})

		// Some guides render applications as plain text without a table.
		if len(makes) == 0 {
			for _, word := range strings.Fields(strings.ToUpper(text)) {
				word = strings.Trim(word, ".,;:()[]")
				if isKnownMake(word) {
					record(word)
				}
			}
		}
	})

	return makes
}

// setBrowserHeaders makes the request indistinguishable from a regular
// browser session; the catalog rejects obvious non-browser clients.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
}
