package app

import (
	"context"

	"homeventure/internal/catalog"
	"homeventure/internal/domain"
)

// BoardService assembles the read-side board: every catalog and user property
// as a DisplayProperty, each paired with its knock status when one exists.
type BoardService struct {
	props    *PropertyService
	statuses *StatusService
}

func NewBoardService(props *PropertyService, statuses *StatusService) *BoardService {
	return &BoardService{props: props, statuses: statuses}
}

// BoardEntry is one row of the board.
type BoardEntry struct {
	domain.DisplayProperty
	Status *domain.PropertyStatus `json:"status,omitempty"`
}

func (s *BoardService) Board(ctx context.Context) ([]BoardEntry, error) {
	statuses, err := s.statuses.All(ctx)
	if err != nil {
		return nil, err
	}
	userProps, err := s.props.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]BoardEntry, 0, catalog.Len()+len(userProps))
	for _, p := range catalog.All() {
		entries = append(entries, newEntry(p.Display(), statuses))
	}
	for _, p := range userProps {
		entries = append(entries, newEntry(p.Display(), statuses))
	}
	return entries, nil
}

func newEntry(dp domain.DisplayProperty, statuses map[string]domain.PropertyStatus) BoardEntry {
	e := BoardEntry{DisplayProperty: dp}
	if st, ok := statuses[dp.ID]; ok {
		e.Status = &st
	}
	return e
}
