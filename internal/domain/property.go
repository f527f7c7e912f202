package domain

// Property is a curated catalog record. The catalog is compiled into the
// binary and never mutated, so every field is known.
type Property struct {
	ID           int64    `json:"id"`
	Address      string   `json:"address"`
	Notes        string   `json:"notes"`
	Removed      string   `json:"removed"`
	Beds         float64  `json:"beds"`
	Baths        float64  `json:"baths"`
	SqFt         int64    `json:"sqFt"`
	YearBuilt    int      `json:"yearBuilt"`
	Construction string   `json:"construction"`
	HasPool      bool     `json:"hasPool"`
	PoolType     string   `json:"poolType"`
	Price        *float64 `json:"price"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	ListingID    int64    `json:"propertyId"`
}

// UserProperty is a property added at runtime. Numeric attributes may be
// unknown, so they are pointers. IDs carry the "u" prefix (see PropertyID).
type UserProperty struct {
	ID           string   `json:"id"`
	Address      string   `json:"address"`
	Notes        string   `json:"notes"`
	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	SqFt         *int64   `json:"sqFt"`
	YearBuilt    *int     `json:"yearBuilt"`
	Construction string   `json:"construction"`
	HasPool      bool     `json:"hasPool"`
	PoolType     string   `json:"poolType"`
	Price        *float64 `json:"price"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
	Source       string   `json:"source,omitempty"`
}

// DisplayProperty is the read-side projection the UI renders. It is derived
// from either variant and never persisted.
type DisplayProperty struct {
	ID           string   `json:"id"`
	Address      string   `json:"address"`
	Notes        string   `json:"notes"`
	Beds         *float64 `json:"beds"`
	Baths        *float64 `json:"baths"`
	SqFt         *int64   `json:"sqFt"`
	YearBuilt    *int     `json:"yearBuilt"`
	Construction string   `json:"construction"`
	HasPool      bool     `json:"hasPool"`
	PoolType     string   `json:"poolType"`
	Price        *float64 `json:"price"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	IsUserAdded  bool     `json:"isUserAdded"`
}

// Display normalizes a catalog record into the projection.
func (p Property) Display() DisplayProperty {
	beds, baths, sqft, year := p.Beds, p.Baths, p.SqFt, p.YearBuilt
	return DisplayProperty{
		ID:           CatalogID(p.ID).String(),
		Address:      p.Address,
		Notes:        p.Notes,
		Beds:         &beds,
		Baths:        &baths,
		SqFt:         &sqft,
		YearBuilt:    &year,
		Construction: p.Construction,
		HasPool:      p.HasPool,
		PoolType:     p.PoolType,
		Price:        p.Price,
		Lat:          p.Lat,
		Lon:          p.Lon,
	}
}

// Display normalizes a user record into the projection.
func (p UserProperty) Display() DisplayProperty {
	return DisplayProperty{
		ID:           p.ID,
		Address:      p.Address,
		Notes:        p.Notes,
		Beds:         p.Beds,
		Baths:        p.Baths,
		SqFt:         p.SqFt,
		YearBuilt:    p.YearBuilt,
		Construction: p.Construction,
		HasPool:      p.HasPool,
		PoolType:     p.PoolType,
		Price:        p.Price,
		Lat:          p.Lat,
		Lon:          p.Lon,
		IsUserAdded:  true,
	}
}
