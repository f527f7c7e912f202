package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"homeventure/internal/app"
	"homeventure/internal/domain"
)

type Handlers struct {
	Statuses *app.StatusService
	Props    *app.PropertyService
	Board    *app.BoardService
	Enrich   *app.EnrichService
	Suggest  *app.SuggestService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/status", h.getStatus)
	s.mux.Post("/v1/status", h.setStatus)
	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Post("/v1/properties", h.createProperty)
	s.mux.Delete("/v1/properties", h.deleteProperty)
	s.mux.Get("/v1/board", h.board)
	s.mux.Post("/v1/enrich", h.enrich)
	s.mux.Post("/v1/address-search", h.addressSearch)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeStoreError maps service failures: an unreachable store is an explicit
// 503 instead of a silent success.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		writeProblem(w, http.StatusServiceUnavailable, "Storage Unavailable", "record store is not reachable")
		return
	}
	writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
}

// propertyIDFromJSON accepts either a JSON number (catalog id) or a string
// (either id form), since the UI sends both.
func propertyIDFromJSON(raw json.RawMessage) (domain.PropertyID, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return domain.ParsePropertyID(s)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return domain.CatalogID(n), nil
	}
	return domain.PropertyID{}, errors.New("propertyId must be a number or string")
}

// ---- status ----

func (h *Handlers) getStatus(w http.ResponseWriter, r *http.Request) {
	if pid := r.URL.Query().Get("propertyId"); pid != "" {
		id, err := domain.ParsePropertyID(pid)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid ID", err.Error())
			return
		}
		st, err := h.Statuses.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st) // nil encodes as null
		return
	}

	all, err := h.Statuses.All(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *Handlers) setStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PropertyID json.RawMessage       `json:"propertyId"`
		Status     domain.PropertyStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	id, err := propertyIDFromJSON(body.PropertyID)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	if err := h.Statuses.Set(r.Context(), id, body.Status); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeStoreError(w, err)
			return
		}
		writeProblem(w, http.StatusBadRequest, "Invalid Status", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---- properties ----

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Props.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": props})
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	var body struct {
		domain.UserProperty
		InitialStatus domain.Status `json:"initialStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if body.Address == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "address is required")
		return
	}
	created, err := h.Props.Create(r.Context(), body.UserProperty, body.InitialStatus)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeStoreError(w, err)
			return
		}
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "property": created})
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	id, err := domain.ParsePropertyID(body.ID)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", err.Error())
		return
	}
	if err := h.Props.Delete(r.Context(), id); err != nil {
		if errors.Is(err, app.ErrNotUserProperty) {
			writeProblem(w, http.StatusBadRequest, "Invalid ID", "cannot delete catalog properties")
			return
		}
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---- board ----

func (h *Handlers) board(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Board.Board(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": entries})
}

// ---- enrichment / suggestions ----

func (h *Handlers) enrich(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if body.Address == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "address is required")
		return
	}
	writeJSON(w, http.StatusOK, h.Enrich.Enrich(r.Context(), body.Address))
}

func (h *Handlers) addressSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	suggestions := h.Suggest.Suggest(r.Context(), body.Query)
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
