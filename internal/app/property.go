package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"homeventure/internal/domain"
)

// ErrNotUserProperty rejects deletes aimed at catalog entries.
var ErrNotUserProperty = errors.New("only user-added properties can be deleted")

// PropertyService manages user-added properties and their paired statuses.
type PropertyService struct {
	store domain.Store
	now   func() time.Time
}

func NewPropertyService(store domain.Store) *PropertyService {
	return &PropertyService{store: store, now: time.Now}
}

// newUserID builds a "u"-prefixed id. The wall-clock token keeps ids roughly
// sortable by creation time; the UUID suffix makes collisions under
// concurrent creation a non-issue.
func newUserID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("u%d-%s", t.UnixMilli(), suffix)
}

// Create persists a new user property plus its initial status record. The id
// and timestamps in the input are ignored. The two writes are not
// transactional; a crash between them leaves a property with no status, which
// readers treat as "no status yet".
func (s *PropertyService) Create(ctx context.Context, in domain.UserProperty, initial domain.Status) (domain.UserProperty, error) {
	if initial == "" {
		initial = domain.StatusActive
	}
	if !initial.Valid() {
		return domain.UserProperty{}, fmt.Errorf("invalid initial status %q", initial)
	}

	now := s.now().UTC()
	in.ID = newUserID(now)
	in.CreatedAt = now.Format(time.RFC3339)
	in.UpdatedAt = in.CreatedAt

	id := domain.UserID(in.ID)
	if err := s.store.Put(ctx, id.PropertyKey(), in); err != nil {
		return domain.UserProperty{}, err
	}

	st := domain.PropertyStatus{
		Status:    initial,
		Notes:     in.Notes,
		UpdatedAt: now.Format(time.RFC3339),
	}
	if err := s.store.Put(ctx, id.StatusKey(), st); err != nil {
		return domain.UserProperty{}, err
	}
	return in, nil
}

// List returns all user properties in store order. Malformed records are
// skipped, matching the status listing behaviour.
func (s *PropertyService) List(ctx context.Context) ([]domain.UserProperty, error) {
	keys, err := s.store.Keys(ctx, domain.PropertyKeyPrefix)
	if err != nil {
		return nil, err
	}

	props := make([]domain.UserProperty, 0, len(keys))
	for _, key := range keys {
		var p domain.UserProperty
		ok, err := s.store.Get(ctx, key, &p)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return nil, err
			}
			log.Warn().Str("key", key).Err(err).Msg("skipping malformed property record")
			continue
		}
		if !ok {
			continue
		}
		props = append(props, p)
	}
	return props, nil
}

// Delete removes a user property and its status. Catalog ids are rejected;
// deleting an id that does not exist succeeds (idempotent).
func (s *PropertyService) Delete(ctx context.Context, id domain.PropertyID) error {
	if !id.IsUser() {
		return ErrNotUserProperty
	}
	if err := s.store.Delete(ctx, id.PropertyKey()); err != nil {
		return err
	}
	return s.store.Delete(ctx, id.StatusKey())
}
