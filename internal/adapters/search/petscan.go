// Package search provides the candidate-word sources backing answer
// verification: a PetScan category-search client and an offline index.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/riddlerush/pkg/logger"
)

// Defaults for the PetScan client.
const (
	DefaultPetScanBaseURL = "https://petscan.wmflabs.org/"
	defaultPetScanTimeout = 10 * time.Second
)

// PetScan queries the Wikipedia category-membership API for all members
// of a category. The caller filters by letter; PetScan itself is only
// asked for the full member list.
type PetScan struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// PetScanOption applies a configuration option to the PetScan client.
type PetScanOption func(*PetScan)

// WithBaseURL overrides the PetScan endpoint, mainly for tests.
func WithBaseURL(u string) PetScanOption {
	return func(p *PetScan) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithTimeout bounds how long a category search may take.
func WithTimeout(d time.Duration) PetScanOption {
	return func(p *PetScan) {
		if d > 0 {
			p.client.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(c *http.Client) PetScanOption {
	return func(p *PetScan) {
		if c != nil {
			p.client = c
		}
	}
}

// WithPetScanLogger sets a custom logger for the client.
func WithPetScanLogger(l logger.Logger) PetScanOption {
	return func(p *PetScan) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPetScan creates a PetScan client with a bounded request timeout.
func NewPetScan(opts ...PetScanOption) *PetScan {
	p := &PetScan{
		baseURL: DefaultPetScanBaseURL,
		client:  &http.Client{Timeout: defaultPetScanTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// petscanResponse mirrors the nested shape member titles live at:
// data["*"][0]["a"]["*"] is the result list.
type petscanResponse struct {
	Batches []struct {
		A struct {
			Results []struct {
				Title string `json:"title"`
			} `json:"*"`
		} `json:"a"`
	} `json:"*"`
}

// Lookup fetches all member titles of the category behind searchWord.
// Titles are normalized by taking the segment before the first
// underscore, dropping disambiguation suffixes; the category name
// itself is excluded. The letter is ignored here, filtering happens in
// the verifier.
func (p *PetScan) Lookup(ctx context.Context, searchWord, _ string) ([]string, error) {
	params := url.Values{
		"categories":         {searchWord},
		"project":            {"wikipedia"},
		"language":           {"de"},
		"interface_language": {"de"},
		"format":             {"json"},
		"ns[0]":              {"1"},
		"edits[bots]":        {"both"},
		"edits[anons]":       {"both"},
		"edits[flagged]":     {"both"},
		"cb_labels_yes_l":    {"1"},
		"cb_labels_any_l":    {"1"},
		"cb_labels_no_l":     {"1"},
		"max_sitelink_count": {"9999"},
		"search_max_results": {"9999995"},
		"doit":               {""},
	}

	reqURL := strings.TrimSuffix(p.baseURL, "/") + "/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}

	if p.log != nil {
		p.log.Debug(ctx, "requesting petscan", logger.String("category", searchWord))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode)
	}

	var decoded petscanResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(decoded.Batches) == 0 {
		return nil, nil
	}

	results := decoded.Batches[0].A.Results
	titles := make([]string, 0, len(results))
	for _, r := range results {
		title, _, _ := strings.Cut(r.Title, "_")
		if title == searchWord {
			continue
		}
		titles = append(titles, title)
	}
	return titles, nil
}
