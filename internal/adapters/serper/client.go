// Package serper is the web search provider adapter.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"homeventure/internal/adapters/observability"
	"homeventure/internal/domain"
)

type Client struct {
	base string
	key  string
	hc   *http.Client
}

func New(base, key string, timeout time.Duration) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("serper: API key is required")
	}
	if base == "" {
		base = "https://google.serper.dev"
	}
	return &Client{base: base, key: key, hc: &http.Client{Timeout: timeout}}, nil
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl,omitempty"`
}

type searchResponse struct {
	Organic        []domain.SearchResult  `json:"organic"`
	KnowledgeGraph *domain.KnowledgeGraph `json:"knowledgeGraph"`
}

func (c *Client) Search(ctx context.Context, query string, num int) (domain.SearchPage, error) {
	body, err := json.Marshal(searchRequest{Q: query, Num: num, GL: "us"})
	if err != nil {
		return domain.SearchPage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/search", bytes.NewReader(body))
	if err != nil {
		return domain.SearchPage{}, err
	}
	req.Header.Set("X-API-KEY", c.key)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveProvider("serper", "search", 0, time.Since(start))
		return domain.SearchPage{}, err
	}
	defer resp.Body.Close()
	observability.ObserveProvider("serper", "search", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.SearchPage{}, fmt.Errorf("serper: status %d: %s", resp.StatusCode, b)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.SearchPage{}, fmt.Errorf("%w: serper: %v", domain.ErrBadPayload, err)
	}
	return domain.SearchPage{Organic: out.Organic, KnowledgeGraph: out.KnowledgeGraph}, nil
}
