package domain

import (
	"context"
	"errors"
)

// ErrStoreUnavailable wraps any failure to reach the key-value store. Handlers
// turn it into an explicit "storage unavailable" response instead of silently
// succeeding.
var ErrStoreUnavailable = errors.New("storage unavailable")

// ErrBadPayload marks a provider response whose shape did not match the
// expected schema. Providers are best-effort, so callers degrade to "no data".
var ErrBadPayload = errors.New("unexpected payload shape")

// Store is a namespaced JSON key-value mapping. No transactions, no atomicity
// across keys; callers own the JSON shape.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Put(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// SearchResult is one organic web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// KnowledgeGraph is the optional entity panel a search may return.
type KnowledgeGraph struct {
	Title   string `json:"title,omitempty"`
	Address string `json:"address,omitempty"`
}

// SearchPage is a search provider response.
type SearchPage struct {
	Organic        []SearchResult
	KnowledgeGraph *KnowledgeGraph
}

// Searcher is an external web search provider.
type Searcher interface {
	Search(ctx context.Context, query string, num int) (SearchPage, error)
}

// Place is a geocoding hit with enough address detail to build suggestions.
type Place struct {
	DisplayName string
	Lat         float64
	Lon         float64
	HouseNumber string
	Road        string
	City        string
	State       string
}

// Coords is a bare latitude/longitude pair.
type Coords struct {
	Lat float64
	Lon float64
}

// Geocoder is an external geocoding provider.
type Geocoder interface {
	// Suggest searches with the service-area bias applied (bounded viewbox).
	Suggest(ctx context.Context, query string, limit int) ([]Place, error)
	// Locate resolves a single address to coordinates, or nil when unknown.
	Locate(ctx context.Context, address string) (*Coords, error)
}

// Enrichment is a best-effort partial property record extracted from search
// results. Absent fields stay nil/empty.
type Enrichment struct {
	Beds         *float64 `json:"beds,omitempty"`
	Baths        *float64 `json:"baths,omitempty"`
	SqFt         *int64   `json:"sqFt,omitempty"`
	YearBuilt    *int     `json:"yearBuilt,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	HasPool      *bool    `json:"hasPool,omitempty"`
	Construction string   `json:"construction,omitempty"`
	Source       string   `json:"source,omitempty"`
	SourceURL    string   `json:"sourceUrl,omitempty"`
}

// Fields reports how many fields are populated.
func (e Enrichment) Fields() int {
	n := 0
	if e.Beds != nil {
		n++
	}
	if e.Baths != nil {
		n++
	}
	if e.SqFt != nil {
		n++
	}
	if e.YearBuilt != nil {
		n++
	}
	if e.Price != nil {
		n++
	}
	if e.HasPool != nil {
		n++
	}
	if e.Construction != "" {
		n++
	}
	if e.Source != "" {
		n++
	}
	if e.SourceURL != "" {
		n++
	}
	return n
}

// FillFrom copies fields from other into gaps only; existing values win.
func (e *Enrichment) FillFrom(other Enrichment) {
	if e.Beds == nil {
		e.Beds = other.Beds
	}
	if e.Baths == nil {
		e.Baths = other.Baths
	}
	if e.SqFt == nil {
		e.SqFt = other.SqFt
	}
	if e.YearBuilt == nil {
		e.YearBuilt = other.YearBuilt
	}
	if e.Price == nil {
		e.Price = other.Price
	}
	if e.HasPool == nil {
		e.HasPool = other.HasPool
	}
	if e.Construction == "" {
		e.Construction = other.Construction
	}
	if e.Source == "" {
		e.Source = other.Source
	}
	if e.SourceURL == "" {
		e.SourceURL = other.SourceURL
	}
}

// Extractor is an external language-model provider used to turn untrusted
// search text into structured data.
type Extractor interface {
	// ExtractProperty asks for the enumerated enrichment fields as JSON.
	ExtractProperty(ctx context.Context, results []SearchResult) (Enrichment, error)
	// ExtractAddresses asks for up to three plausible street addresses
	// matching the query, as a JSON string array.
	ExtractAddresses(ctx context.Context, query string, page SearchPage) ([]string, error)
}

// Suggestion is one address autocomplete candidate.
type Suggestion struct {
	Address     string  `json:"address"`
	FullAddress string  `json:"fullAddress"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Source      string  `json:"source"`
}
