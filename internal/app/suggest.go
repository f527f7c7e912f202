package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"homeventure/internal/domain"
)

const (
	minQueryLen    = 3
	maxSuggestions = 6
)

// SuggestService serves address autocomplete for the service area (Florida,
// Palm Beach County). The geocoder is the primary source; when it comes back
// thin and both the search and model providers are configured, the model
// pulls candidate addresses out of web results and each one is geocoded
// individually. Every provider call is independently guarded: failures mean
// fewer suggestions, never an error.
type SuggestService struct {
	geo    domain.Geocoder
	search domain.Searcher  // nil when no search key configured
	llm    domain.Extractor // nil when no model key configured
}

func NewSuggestService(geo domain.Geocoder, search domain.Searcher, llm domain.Extractor) *SuggestService {
	return &SuggestService{geo: geo, search: search, llm: llm}
}

func (s *SuggestService) Suggest(ctx context.Context, query string) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0, maxSuggestions)
	if len(query) < minQueryLen {
		return suggestions
	}

	// Geocoder pass, Florida-biased.
	searchQuery := query
	if low := strings.ToLower(query); !strings.Contains(low, "fl") {
		searchQuery = query + ", Florida"
	}
	places, err := s.geo.Suggest(ctx, searchQuery, 5)
	if err != nil {
		log.Warn().Str("query", query).Err(err).Msg("geocoder suggest failed")
	}
	for _, p := range places {
		if p.State != "Florida" && !strings.Contains(p.DisplayName, "Florida") {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Address:     shortAddress(p),
			FullAddress: p.DisplayName,
			Lat:         p.Lat,
			Lon:         p.Lon,
			Source:      "nominatim",
		})
	}

	// Search+model pass when the geocoder came back thin.
	if len(suggestions) < 2 && s.search != nil && s.llm != nil {
		suggestions = s.appendExtracted(ctx, query, suggestions)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func (s *SuggestService) appendExtracted(ctx context.Context, query string, suggestions []domain.Suggestion) []domain.Suggestion {
	page, err := s.search.Search(ctx, query+" Florida address property", 10)
	if err != nil {
		log.Warn().Str("query", query).Err(err).Msg("suggestion search failed")
		return suggestions
	}

	addrs, err := s.llm.ExtractAddresses(ctx, query, page)
	if err != nil {
		log.Warn().Str("query", query).Err(err).Msg("address extraction failed")
		return suggestions
	}

	for _, addr := range addrs {
		if hasAddress(suggestions, addr) {
			continue
		}
		coords, err := s.geo.Locate(ctx, addr)
		if err != nil {
			log.Warn().Str("address", addr).Err(err).Msg("geocode of extracted address failed")
			continue
		}
		if coords == nil {
			continue
		}
		parts := strings.SplitN(addr, ",", 3)
		short := parts[0]
		if len(parts) > 1 {
			short = parts[0] + "," + parts[1]
		}
		suggestions = append(suggestions, domain.Suggestion{
			Address:     short,
			FullAddress: addr,
			Lat:         coords.Lat,
			Lon:         coords.Lon,
			Source:      "serper",
		})
	}
	return suggestions
}

// hasAddress reports whether an existing suggestion already covers the
// extracted address, judged by its leading street component.
func hasAddress(suggestions []domain.Suggestion, addr string) bool {
	lead := strings.ToLower(strings.SplitN(addr, ",", 2)[0])
	for _, s := range suggestions {
		if strings.Contains(strings.ToLower(s.Address), lead) {
			return true
		}
	}
	return false
}

// shortAddress builds "number road, city" when the pieces exist, else falls
// back to the first display-name segment.
func shortAddress(p domain.Place) string {
	street := p.Road
	if p.HouseNumber != "" && p.Road != "" {
		street = p.HouseNumber + " " + p.Road
	}
	if street == "" {
		return strings.SplitN(p.DisplayName, ",", 2)[0]
	}
	if p.City == "" {
		return street
	}
	return street + ", " + p.City
}
