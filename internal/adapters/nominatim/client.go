// Package nominatim is the geocoding provider adapter. The public Nominatim
// instance allows roughly one request per second, so the client carries its
// own rate limiter.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"homeventure/internal/adapters/observability"
	"homeventure/internal/domain"
)

// Bounding box covering Florida, in Nominatim viewbox order (x1,y1,x2,y2).
const floridaViewbox = "-87.6,24.5,-80.0,31.0"

const userAgent = "homeventure/1.0"

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, timeout time.Duration, rps float64) *Client {
	if base == "" {
		base = "https://nominatim.openstreetmap.org"
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// wire shape; lat/lon arrive as strings
type result struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     *struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
	} `json:"address"`
}

func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	if limit <= 0 {
		limit = 5
	}
	q := url.Values{
		"q":              {query},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {strconv.Itoa(limit)},
		"countrycodes":   {"us"},
		"viewbox":        {floridaViewbox},
		"bounded":        {"1"},
	}
	return c.search(ctx, q)
}

func (c *Client) Locate(ctx context.Context, address string) (*domain.Coords, error) {
	q := url.Values{
		"q":            {address},
		"format":       {"json"},
		"limit":        {"1"},
		"countrycodes": {"us"},
	}
	places, err := c.search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}
	return &domain.Coords{Lat: places[0].Lat, Lon: places[0].Lon}, nil
}

func (c *Client) search(ctx context.Context, q url.Values) ([]domain.Place, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveProvider("nominatim", "search", 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveProvider("nominatim", "search", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("nominatim: status %d: %s", resp.StatusCode, b)
	}

	var raw []result
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: nominatim: %v", domain.ErrBadPayload, err)
	}

	places := make([]domain.Place, 0, len(raw))
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			return nil, fmt.Errorf("%w: nominatim: non-numeric coordinates %q,%q", domain.ErrBadPayload, r.Lat, r.Lon)
		}
		p := domain.Place{DisplayName: r.DisplayName, Lat: lat, Lon: lon}
		if a := r.Address; a != nil {
			p.HouseNumber = a.HouseNumber
			p.Road = a.Road
			p.State = a.State
			// Nominatim spreads the locality over several fields.
			switch {
			case a.City != "":
				p.City = a.City
			case a.Town != "":
				p.City = a.Town
			default:
				p.City = a.Village
			}
		}
		places = append(places, p)
	}
	return places, nil
}
