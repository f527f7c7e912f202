package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	server "homeventure/internal/adapters/http_server"
	redisad "homeventure/internal/adapters/redis"
	"homeventure/internal/app"
	"homeventure/internal/catalog"
	"homeventure/internal/domain"
)

func newTestServer(t *testing.T, store *redisad.Store) *httptest.Server {
	t.Helper()
	statuses := app.NewStatusService(store)
	props := app.NewPropertyService(store)

	srv := server.New([]string{"*"})
	srv.MountHandlers(&server.Handlers{
		Statuses: statuses,
		Props:    props,
		Board:    app.NewBoardService(props, statuses),
		Enrich:   app.NewEnrichService(nil, nil),
		Suggest:  app.NewSuggestService(noopGeocoder{}, nil, nil),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

type noopGeocoder struct{}

func (noopGeocoder) Suggest(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	return nil, nil
}
func (noopGeocoder) Locate(ctx context.Context, address string) (*domain.Coords, error) {
	return nil, nil
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

func decode(t *testing.T, res *http.Response, dst any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHTTP_EndToEnd_PropertyLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ts := newTestServer(t, store)

	// create a property with an initial status
	res := postJSON(t, ts.URL+"/v1/properties", map[string]any{
		"address":       "9001 161st Ter N",
		"notes":         "from drive-by",
		"beds":          3,
		"initialStatus": "toview",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("create status %d", res.StatusCode)
	}
	var created struct {
		Success  bool                `json:"success"`
		Property domain.UserProperty `json:"property"`
	}
	decode(t, res, &created)
	if !created.Success || created.Property.ID == "" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	// the board shows catalog + the new property with its status
	res, err := http.Get(ts.URL + "/v1/board")
	if err != nil {
		t.Fatalf("GET board: %v", err)
	}
	var board struct {
		Properties []struct {
			ID          string                 `json:"id"`
			IsUserAdded bool                   `json:"isUserAdded"`
			Status      *domain.PropertyStatus `json:"status"`
		} `json:"properties"`
	}
	decode(t, res, &board)
	if len(board.Properties) != catalog.Len()+1 {
		t.Fatalf("board size %d", len(board.Properties))
	}
	found := false
	for _, p := range board.Properties {
		if p.ID == created.Property.ID {
			found = true
			if !p.IsUserAdded || p.Status == nil || p.Status.Status != domain.StatusToView {
				t.Fatalf("unexpected board entry: %+v", p)
			}
		}
	}
	if !found {
		t.Fatal("created property missing from board")
	}

	// single-status read
	res, err = http.Get(ts.URL + "/v1/status?propertyId=" + created.Property.ID)
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	var st *domain.PropertyStatus
	decode(t, res, &st)
	if st == nil || st.Status != domain.StatusToView {
		t.Fatalf("unexpected status: %+v", st)
	}

	// delete removes property and status
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/properties", bytes.NewReader(mustJSON(map[string]string{"id": created.Property.ID})))
	req.Header.Set("Content-Type", "application/json")
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", res.StatusCode)
	}

	res, _ = http.Get(ts.URL + "/v1/status?propertyId=" + created.Property.ID)
	decode(t, res, &st)
	if st != nil {
		t.Fatalf("status must be gone, got %+v", st)
	}
}

func TestHTTP_StatusRoundTripForCatalogID(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ts := newTestServer(t, store)

	// numeric propertyId over the wire
	res := postJSON(t, ts.URL+"/v1/status", map[string]any{
		"propertyId": 52,
		"status":     map[string]any{"status": "knocked", "notes": "no answer", "knockedDate": "2026-02-01"},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("set status %d", res.StatusCode)
	}
	res.Body.Close()

	res, err := http.Get(ts.URL + "/v1/status")
	if err != nil {
		t.Fatalf("GET all: %v", err)
	}
	var all map[string]domain.PropertyStatus
	decode(t, res, &all)
	if all["52"].Status != domain.StatusKnocked || all["52"].Notes != "no answer" {
		t.Fatalf("unexpected map: %+v", all)
	}
}

func TestHTTP_DeleteCatalogIDRejected(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ts := newTestServer(t, store)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/properties", bytes.NewReader(mustJSON(map[string]string{"id": "52"})))
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestHTTP_StoreDownIs503(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ts := newTestServer(t, store)
	mr.Close()

	res, err := http.Get(ts.URL + "/v1/properties")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.StatusCode)
	}
}

func TestHTTP_AddressSearchAlwaysAnArray(t *testing.T) {
	mr := miniredis.RunT(t)
	store := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ts := newTestServer(t, store)

	res := postJSON(t, ts.URL+"/v1/address-search", map[string]string{"query": "ab"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	raw := make(map[string]json.RawMessage)
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["suggestions"]) != "[]" {
		t.Fatalf("suggestions must encode as empty array, got %s", raw["suggestions"])
	}
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal: %v", err))
	}
	return b
}
