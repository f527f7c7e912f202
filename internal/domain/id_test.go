package domain_test

import (
	"testing"

	"homeventure/internal/domain"
)

func TestParsePropertyID(t *testing.T) {
	cases := []struct {
		in     string
		user   bool
		str    string
		hasErr bool
	}{
		{in: "52", user: false, str: "52"},
		{in: " 52 ", user: false, str: "52"},
		{in: "u1700000000000-abcd1234", user: true, str: "u1700000000000-abcd1234"},
		{in: "", hasErr: true},
		{in: "fifty-two", hasErr: true},
	}
	for _, c := range cases {
		id, err := domain.ParsePropertyID(c.in)
		if c.hasErr {
			if err == nil {
				t.Errorf("ParsePropertyID(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePropertyID(%q): %v", c.in, err)
			continue
		}
		if id.IsUser() != c.user || id.String() != c.str {
			t.Errorf("ParsePropertyID(%q) = %v (user=%v), want %s (user=%v)", c.in, id, id.IsUser(), c.str, c.user)
		}
	}
}

func TestPropertyIDKeys(t *testing.T) {
	if got := domain.CatalogID(52).StatusKey(); got != "status:52" {
		t.Fatalf("status key: %q", got)
	}
	if got := domain.UserID("u1-x").PropertyKey(); got != "property:u1-x" {
		t.Fatalf("property key: %q", got)
	}
}

func TestEnrichmentFillFrom(t *testing.T) {
	beds, fbBeds, baths := 5.0, 4.0, 2.0
	e := domain.Enrichment{Beds: &beds}
	e.FillFrom(domain.Enrichment{Beds: &fbBeds, Baths: &baths, Source: "Zillow"})

	if *e.Beds != 5 {
		t.Fatalf("existing value must win, got %v", *e.Beds)
	}
	if e.Baths == nil || *e.Baths != 2 || e.Source != "Zillow" {
		t.Fatalf("gaps must be filled: %+v", e)
	}
}

func TestDisplayProjection(t *testing.T) {
	price := 500000.0
	p := domain.Property{ID: 7, Address: "a", Beds: 4, Baths: 2.5, SqFt: 2000, YearBuilt: 1999, Price: &price}
	d := p.Display()
	if d.ID != "7" || d.IsUserAdded {
		t.Fatalf("catalog projection: %+v", d)
	}
	if d.Beds == nil || *d.Beds != 4 || d.SqFt == nil || *d.SqFt != 2000 {
		t.Fatalf("catalog numerics must be populated: %+v", d)
	}

	u := domain.UserProperty{ID: "u1-x", Address: "b"}
	du := u.Display()
	if !du.IsUserAdded || du.Beds != nil {
		t.Fatalf("user projection: %+v", du)
	}
}
