package web

import (
	"net/http"

	"ledgerpro/internal/app"
	"ledgerpro/internal/core"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listPeople(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.pathKind(w, r)
	if !ok {
		return
	}
	res, err := h.svc.ListPeople(r.Context(), kind)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res.People)
}

func (h *Handler) addPerson(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.pathKind(w, r)
	if !ok {
		return
	}
	var p core.Person
	if !decodeJSON(w, r, &p) {
		return
	}
	out, err := h.svc.AddPerson(r.Context(), kind, p)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, out)
}

func (h *Handler) updatePerson(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.pathKind(w, r)
	if !ok {
		return
	}
	var p core.Person
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")
	out, err := h.svc.UpdatePerson(r.Context(), kind, p)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h *Handler) linkPeople(w http.ResponseWriter, r *http.Request) {
	var req app.LinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.LinkPeople(r.Context(), req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unlinkPerson(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.pathKind(w, r)
	if !ok {
		return
	}
	if err := h.svc.UnlinkPeople(r.Context(), chi.URLParam(r, "id"), kind); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// settleAccounts handles POST /api/people/settle. A pair with nothing to
// offset answers 200 with settled=false.
func (h *Handler) settleAccounts(w http.ResponseWriter, r *http.Request) {
	var req app.LinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.SettleAccounts(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	type response struct {
		Settled    bool             `json:"settled"`
		Settlement *core.Settlement `json:"settlement,omitempty"`
	}
	writeJSON(w, response{Settled: res.Settled, Settlement: res.Settlement})
}
