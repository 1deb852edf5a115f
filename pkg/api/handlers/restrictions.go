package handlers

import (
	"net/http"
	"sort"

	"github.com/marmos91/sessiongate/pkg/connection"
	"github.com/marmos91/sessiongate/pkg/restriction"
)

// RestrictionsHandler exposes read-only introspection of the restriction
// catalog and the connections currently in use.
type RestrictionsHandler struct {
	tracker *connection.Tracker
}

// NewRestrictionsHandler creates a new restrictions handler.
func NewRestrictionsHandler(tracker *connection.Tracker) *RestrictionsHandler {
	return &RestrictionsHandler{tracker: tracker}
}

// Catalog handles GET /v1/catalog.
//
// Returns the restriction attribute form: every supported restriction with
// its attribute name, field type, truth value, and description. Clients use
// this to render restriction toggles in admin UIs.
func (h *RestrictionsHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse(restriction.Attributes()))
}

// ActiveEntry describes one resource with a nonzero use count.
type ActiveEntry struct {
	Origin string `json:"origin"`
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// Active handles GET /v1/active.
//
// Returns a point-in-time snapshot of every tracked resource currently in
// use, sorted for stable output. The snapshot is not atomic with respect to
// concurrent connects and disconnects.
func (h *RestrictionsHandler) Active(w http.ResponseWriter, r *http.Request) {
	if h.tracker == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("connection tracker not initialized"))
		return
	}

	active := h.tracker.Active()
	entries := make([]ActiveEntry, 0, len(active))
	for id, count := range active {
		origin := "?"
		if id.Origin() != nil {
			origin = id.Origin().Name()
		}
		entries = append(entries, ActiveEntry{
			Origin: origin,
			Kind:   string(id.Kind()),
			Name:   id.Name(),
			Count:  count,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Origin != entries[j].Origin {
			return entries[i].Origin < entries[j].Origin
		}
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return entries[i].Name < entries[j].Name
	})

	writeJSON(w, http.StatusOK, okResponse(map[string]interface{}{
		"active": entries,
	}))
}
