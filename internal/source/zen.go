package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Snehil208001/QuoteVault/internal/quote"
)

// zenItem mirrors the ZenQuotes wire format: q = text, a = author, h = html
// rendering (ignored).
type zenItem struct {
	Q string `json:"q"`
	A string `json:"a"`
	H string `json:"h"`
}

// ZenClient fetches a random batch from a ZenQuotes-style REST endpoint.
// The free tier returns 50 quotes per call, which is why the engine keeps the
// whole batch in its rotation buffer.
type ZenClient struct {
	baseURL string
	client  *http.Client
}

func NewZenClient(baseURL string) *ZenClient {
	return &ZenClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *ZenClient) FetchQuotes(ctx context.Context) ([]quote.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quotes", nil)
	if err != nil {
		return nil, fmt.Errorf("building quotes request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching quotes: unexpected status %s", resp.Status)
	}

	var items []zenItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding quotes: %w", err)
	}

	quotes := make([]quote.Quote, 0, len(items))
	for _, it := range items {
		q := quote.Quote{Text: strings.TrimSpace(it.Q), Author: strings.TrimSpace(it.A)}
		if q.Valid() {
			quotes = append(quotes, q)
		}
	}
	if len(quotes) == 0 {
		return nil, ErrEmptyBatch
	}
	return quotes, nil
}
