package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	webSearchName    = "WebSearch"
	webSearchBaseURL = "https://www.google.com/search"
)

// automotiveContextWords gate make extraction from search results: a make
// name only counts when it appears near part-related vocabulary, which
// keeps unrelated results (dealerships, news) out.
var automotiveContextWords = []string{
	"PART", "AUTO", "CAR", "VEHICLE", "ENGINE", "BRAKE", "FILTER",
	"GASKET", "HEAD", "CYLINDER", "TRANSMISSION", "SUSPENSION",
	"OEM", "AFTERMARKET", "REPLACEMENT", "FITS", "FOR",
	"SUPER", "DUTY", "PICKUP", "TRUCK", "SEDAN", "COUPE",
}

// maxWebSearchMakes caps how many makes a search page may contribute; beyond
// that the result is too unspecific to trust.
const maxWebSearchMakes = 3

// WebSearchSource is the fallback source: a general web search for the part
// number scanned for year-make patterns in automotive context.
type WebSearchSource struct {
	client  *http.Client
	baseURL string
}

// NewWebSearchSource creates the fallback search source.
func NewWebSearchSource(timeout time.Duration) *WebSearchSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebSearchSource{
		baseURL: webSearchBaseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies this source in results and logs.
func (s *WebSearchSource) Name() string {
	return webSearchName
}

// Lookup searches for the quoted part number plus "auto parts" and scans
// result snippets for vehicle makes near automotive vocabulary.
func (s *WebSearchSource) Lookup(ctx context.Context, key, description string) ([]string, error) {
	query := fmt.Sprintf("%q auto parts", key)
	if description != "" {
		query = fmt.Sprintf("%q %s", key, description)
	}

	searchURL := fmt.Sprintf("%s?q=%s&num=10", s.baseURL, url.QueryEscape(query))

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

	makes := extractMakesFromSearchText(doc.Find("body").Text())
	slog.Debug("search lookup finished", "source", webSearchName, "part", key, "makes", len(makes))
	return makes, nil
}

// extractMakesFromSearchText scans page text for year-make patterns and for
// known makes surrounded by automotive context.
func extractMakesFromSearchText(text string) []string {
	upper := strings.ToUpper(text)
	seen := make(map[string]bool)
	var makes []string

	record := func(raw string) bool {
		normalized := normalizeMake(raw)
		if !isValidMake(normalized) || seen[normalized] {
			return false
		}
		seen[normalized] = true
		makes = append(makes, normalized)
		return len(makes) >= maxWebSearchMakes
	}

	for _, match := range yearMakePattern.FindAllStringSubmatch(upper, -1) {
		if isKnownMake(match[1]) && record(match[1]) {
			return makes
		}
	}

	words := strings.Fields(upper)
	for i, word := range words {
		word = strings.Trim(word, ".,;:()[]\"'")
		if !isKnownMake(word) {
			continue
		}

		lo := i - 4
		if lo < 0 {
			lo = 0
		}
		hi := i + 5
		if hi > len(words) {
			hi = len(words)
		}
		context := strings.Join(words[lo:hi], " ")

		for _, ctxWord := range automotiveContextWords {
			if strings.Contains(context, ctxWord) {
				if record(word) {
					return makes
				}
				break
			}
		}
	}

	return makes
}
