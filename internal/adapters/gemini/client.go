// Package gemini is the language-model provider adapter. Model output is
// untrusted free text; both extraction paths dig the first JSON value out of
// whatever prose or markdown fencing surrounds it.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"homeventure/internal/adapters/observability"
	"homeventure/internal/domain"
)

const (
	propertyModel = "gemini-2.0-flash"
	addressModel  = "gemini-2.0-flash-lite"
)

type Client struct {
	base string
	key  string
	hc   *http.Client
}

func New(base, key string, timeout time.Duration) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	return &Client{base: base, key: key, hc: &http.Client{Timeout: timeout}}, nil
}

// ---- generateContent wire shapes ----

type genPart struct {
	Text string `json:"text"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type genRequest struct {
	Contents         []genContent `json:"contents"`
	GenerationConfig genConfig    `json:"generationConfig"`
}

type genResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(genRequest{
		Contents:         []genContent{{Parts: []genPart{{Text: prompt}}}},
		GenerationConfig: genConfig{Temperature: 0.1, MaxOutputTokens: 256},
	})
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.base, model, c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveProvider("gemini", model, 0, time.Since(start))
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveProvider("gemini", model, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, b)
	}

	var out genResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: gemini: %v", domain.ErrBadPayload, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// ---- property extraction ----

// numeric fields come back loosely typed, so everything is a pointer here and
// converted after the parse
type extractedProperty struct {
	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	SqFt         *float64 `json:"sqFt"`
	YearBuilt    *float64 `json:"yearBuilt"`
	Price        *float64 `json:"price"`
	HasPool      *bool    `json:"hasPool"`
	Construction *string  `json:"construction"`
	Source       *string  `json:"source"`
}

func (c *Client) ExtractProperty(ctx context.Context, results []domain.SearchResult) (domain.Enrichment, error) {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Title: %s\nSnippet: %s\nURL: %s", r.Title, r.Snippet, r.Link)
	}

	prompt := `Extract property details from these real estate search results. Return ONLY valid JSON with these fields (use null for unknown values):
{
  "beds": number or null,
  "baths": number or null,
  "sqFt": number or null,
  "yearBuilt": number or null,
  "price": number or null,
  "hasPool": boolean,
  "construction": string or null,
  "source": "zillow" or "redfin" or "realtor" or null
}

Search results:
` + sb.String() + `

JSON response:`

	text, err := c.generate(ctx, propertyModel, prompt)
	if err != nil {
		return domain.Enrichment{}, err
	}

	obj, ok := firstJSONValue(text, '{', '}')
	if !ok {
		return domain.Enrichment{}, fmt.Errorf("%w: gemini: no JSON object in reply", domain.ErrBadPayload)
	}
	var p extractedProperty
	if err := json.Unmarshal([]byte(obj), &p); err != nil {
		return domain.Enrichment{}, fmt.Errorf("%w: gemini: %v", domain.ErrBadPayload, err)
	}

	var e domain.Enrichment
	e.Beds = p.Beds
	e.Baths = p.Baths
	if p.SqFt != nil {
		v := int64(*p.SqFt)
		e.SqFt = &v
	}
	if p.YearBuilt != nil {
		v := int(*p.YearBuilt)
		e.YearBuilt = &v
	}
	e.Price = p.Price
	if p.HasPool != nil && *p.HasPool {
		e.HasPool = p.HasPool
	}
	if p.Construction != nil {
		e.Construction = *p.Construction
	}
	if p.Source != nil {
		e.Source = *p.Source
	}
	return e, nil
}

// ---- address extraction ----

func (c *Client) ExtractAddresses(ctx context.Context, query string, page domain.SearchPage) ([]string, error) {
	organic := page.Organic
	if len(organic) > 5 {
		organic = organic[:5]
	}
	var sb strings.Builder
	for i, r := range organic {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Title: %s\nSnippet: %s", r.Title, r.Snippet)
	}

	kgText := ""
	if kg := page.KnowledgeGraph; kg != nil {
		kgText = fmt.Sprintf("Knowledge Graph: %s - %s", kg.Title, kg.Address)
	}

	prompt := fmt.Sprintf(`The user searched for: %q

Here are Google search results:
%s

%s

Extract up to 3 Florida property addresses that match the user's search.
Return ONLY a JSON array of full street addresses in Florida, like:
["123 Main St, Jupiter, FL 33458", "456 Oak Ave, Palm Beach Gardens, FL 33410"]

If no valid Florida addresses found, return an empty array: []

Focus on addresses in Jupiter, Palm Beach Gardens, or nearby Palm Beach County areas.
Only include real street addresses, not business names or URLs.

JSON array:`, query, kgText, sb.String())

	text, err := c.generate(ctx, addressModel, prompt)
	if err != nil {
		return nil, err
	}

	arr, ok := firstJSONValue(text, '[', ']')
	if !ok {
		return nil, fmt.Errorf("%w: gemini: no JSON array in reply", domain.ErrBadPayload)
	}
	var raw []any
	if err := json.Unmarshal([]byte(arr), &raw); err != nil {
		return nil, fmt.Errorf("%w: gemini: %v", domain.ErrBadPayload, err)
	}

	var addrs []string
	for _, v := range raw {
		s, ok := v.(string)
		if !ok || len(s) <= 5 {
			continue
		}
		addrs = append(addrs, s)
		if len(addrs) == 3 {
			break
		}
	}
	return addrs, nil
}

// firstJSONValue cuts the span from the first open delimiter to the last
// close delimiter, which strips markdown fences and surrounding prose.
func firstJSONValue(text string, open, shut byte) (string, bool) {
	i := strings.IndexByte(text, open)
	j := strings.LastIndexByte(text, shut)
	if i < 0 || j <= i {
		return "", false
	}
	return text[i : j+1], true
}
