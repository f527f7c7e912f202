package app

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"homeventure/internal/domain"
)

// EnrichService fills in property attributes from web search results, with a
// language model doing the extraction when configured and a regex parser as
// fallback. Everything here is best-effort: a failed provider call means a
// thinner result, never an error to the caller.
type EnrichService struct {
	search domain.Searcher  // nil when no search key configured
	llm    domain.Extractor // nil when no model key configured
}

func NewEnrichService(search domain.Searcher, llm domain.Extractor) *EnrichService {
	return &EnrichService{search: search, llm: llm}
}

// EnrichResult is the wire response: the partial record plus up to three raw
// results for the user to eyeball.
type EnrichResult struct {
	Enriched domain.Enrichment     `json:"enriched"`
	Results  []domain.SearchResult `json:"results,omitempty"`
	Message  string                `json:"message,omitempty"`
}

func (s *EnrichService) Enrich(ctx context.Context, address string) EnrichResult {
	if s.search == nil {
		return EnrichResult{Message: "no search provider configured"}
	}

	query := address + " zillow OR redfin beds baths sqft price"
	page, err := s.search.Search(ctx, query, 5)
	if err != nil {
		log.Warn().Str("address", address).Err(err).Msg("enrichment search failed")
		return EnrichResult{Message: "search provider error"}
	}
	results := page.Organic

	var enriched domain.Enrichment
	if s.llm != nil && len(results) > 0 {
		enriched, err = s.llm.ExtractProperty(ctx, results)
		if err != nil {
			log.Warn().Str("address", address).Err(err).Msg("model extraction failed, using regex fallback")
			enriched = domain.Enrichment{}
		}
		// A sparse model answer gets topped up from the regex parser;
		// model values keep precedence on conflicts.
		if enriched.Fields() < 2 {
			enriched.FillFrom(extractDetails(results))
		}
	} else {
		enriched = extractDetails(results)
	}

	if len(results) > 3 {
		results = results[:3]
	}
	return EnrichResult{Enriched: enriched, Results: results}
}

// ---- deterministic regex fallback ----

// Patterns run over lowercased concatenated result text.
var (
	bedsRe  = regexp.MustCompile(`(\d+)\s*(?:bed|bd|bedroom|br)\b`)
	bathsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:bath|ba|bathroom)\b`)
	sqftRe  = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*|\d+)\s*(?:sqft|sq\s*ft|square\s*feet)`)
	yearRe  = regexp.MustCompile(`(?:built\s*(?:in\s*)?|year\s*built[:\s]*)(19\d{2}|20\d{2})`)
	priceRe = regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*([kmb])?`)
)

// Deterministic source priority when several listing sites show up.
var sourceDomains = []struct{ domain, label string }{
	{"zillow.com", "Zillow"},
	{"redfin.com", "Redfin"},
	{"realtor.com", "Realtor"},
}

func extractDetails(results []domain.SearchResult) domain.Enrichment {
	var e domain.Enrichment

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Title)
		sb.WriteByte(' ')
		sb.WriteString(r.Snippet)
		sb.WriteByte(' ')
	}
	text := strings.ToLower(sb.String())

	if m := bedsRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.Beds = &v
		}
	}
	if m := bathsRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.Baths = &v
		}
	}
	if m := sqftRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64); err == nil {
			e.SqFt = &v
		}
	}
	if m := yearRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			e.YearBuilt = &v
		}
	}
	if m := priceRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			switch m[2] {
			case "k":
				v *= 1_000
			case "m":
				v *= 1_000_000
			case "b":
				v *= 1_000_000_000
			}
			e.Price = &v
		}
	}
	if strings.Contains(text, "pool") {
		t := true
		e.HasPool = &t
	}

	for _, sd := range sourceDomains {
		for _, r := range results {
			if strings.Contains(r.Link, sd.domain) {
				e.Source = sd.label
				e.SourceURL = r.Link
				return e
			}
		}
	}
	return e
}
