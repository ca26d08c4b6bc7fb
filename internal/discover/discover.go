// Package discover browses the hosted quote catalog by category, with text
// search.
package discover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CatalogQuote is a quote row in the hosted catalog. Unlike the daily feed,
// catalog quotes carry a category.
type CatalogQuote struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// Categories lists the browsable catalog categories in display order.
func Categories() []string {
	return []string{"Motivation", "Love", "Success", "Wisdom", "Humor"}
}

// Client queries a PostgREST-style endpoint exposing the quotes table.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Quotes fetches catalog quotes filtered by category and an optional search
// term matched case-insensitively against the quote text.
func (c *Client) Quotes(ctx context.Context, category, search string) ([]CatalogQuote, error) {
	params := url.Values{}
	params.Set("select", "*")
	if category != "" {
		params.Set("category", "eq."+category)
	}
	if search != "" {
		params.Set("text", "ilike.*"+search+"*")
	}
	params.Set("order", "id.asc")

	u := c.baseURL + "/rest/v1/quotes?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("discover: building request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discover: fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover: unexpected status %s", resp.Status)
	}

	var quotes []CatalogQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("discover: decoding catalog: %w", err)
	}
	return quotes, nil
}
