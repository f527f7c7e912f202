package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"homeventure/internal/domain"
)

// StatusService reads and writes per-property knock statuses. It deliberately
// does not check that an id refers to a real property; orphaned statuses are
// tolerated and simply never displayed.
type StatusService struct {
	store domain.Store
	now   func() time.Time
}

func NewStatusService(store domain.Store) *StatusService {
	return &StatusService{store: store, now: time.Now}
}

// Get returns the stored status, or nil when none exists.
func (s *StatusService) Get(ctx context.Context, id domain.PropertyID) (*domain.PropertyStatus, error) {
	var st domain.PropertyStatus
	ok, err := s.store.Get(ctx, id.StatusKey(), &st)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// All lists every stored status keyed by id token. Malformed records are
// skipped so one bad entry cannot hide the rest.
func (s *StatusService) All(ctx context.Context) (map[string]domain.PropertyStatus, error) {
	keys, err := s.store.Keys(ctx, domain.StatusKeyPrefix)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.PropertyStatus, len(keys))
	for _, key := range keys {
		var st domain.PropertyStatus
		ok, err := s.store.Get(ctx, key, &st)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return nil, err
			}
			log.Warn().Str("key", key).Err(err).Msg("skipping malformed status record")
			continue
		}
		if !ok {
			continue // raced with a delete
		}
		out[strings.TrimPrefix(key, domain.StatusKeyPrefix)] = st
	}
	return out, nil
}

// Set overwrites the whole record. Last writer wins; there is no merge.
func (s *StatusService) Set(ctx context.Context, id domain.PropertyID, st domain.PropertyStatus) error {
	if !st.Status.Valid() {
		return fmt.Errorf("invalid status %q", st.Status)
	}
	if st.UpdatedAt == "" {
		st.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	}
	return s.store.Put(ctx, id.StatusKey(), st)
}
