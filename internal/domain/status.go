package domain

// Status is the lead-tracking state of a property.
type Status string

const (
	StatusActive        Status = "active"
	StatusKnocked       Status = "knocked"
	StatusHidden        Status = "hidden"
	StatusInterested    Status = "interested"
	StatusNotInterested Status = "not-interested"
	StatusToView        Status = "toview"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusKnocked, StatusHidden, StatusInterested, StatusNotInterested, StatusToView:
		return true
	}
	return false
}

// PropertyStatus is the persisted per-property knock record. It is keyed by
// the property id and overwritten whole; last writer wins.
type PropertyStatus struct {
	Status      Status  `json:"status"`
	Notes       string  `json:"notes"`
	KnockedDate *string `json:"knockedDate"`
	UpdatedAt   string  `json:"updatedAt"`
}
