package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ledgerpro/internal/app"
	"ledgerpro/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	maxJSONBody   = 1 << 20  // 1 MB
	maxUploadBody = 32 << 20 // spreadsheets and backup files
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
	log       zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, log zerolog.Logger) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		log:       log,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.With(RequestBodyLimit(maxJSONBody)).Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Behind the password gate ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(maxUploadBody))
			r.Post("/api/inventory/import", h.importInventory)
			r.Post("/api/backup/import", h.importBackup)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(maxJSONBody))

			r.Get("/api/state", h.state)
			r.Get("/api/summary", h.summary)

			// Inventory
			r.Get("/api/inventory", h.listInventory)
			r.Post("/api/inventory", h.addInventoryItem)
			r.Get("/api/inventory/export", h.exportInventory)
			r.Put("/api/inventory/{id}", h.updateInventoryItem)
			r.Delete("/api/inventory/{id}", h.deleteInventoryItem)

			// Customers and suppliers
			r.Post("/api/people/link", h.linkPeople)
			r.Post("/api/people/settle", h.settleAccounts)
			r.Get("/api/people/{kind}", h.listPeople)
			r.Post("/api/people/{kind}", h.addPerson)
			r.Put("/api/people/{kind}/{id}", h.updatePerson)
			r.Post("/api/people/{kind}/{id}/unlink", h.unlinkPerson)

			// Documents
			r.Get("/api/invoices", h.listInvoices)
			r.Post("/api/invoices", h.addInvoice)
			r.Put("/api/invoices/{id}", h.updateInvoice)
			r.Delete("/api/invoices/{id}", h.deleteInvoice)
			r.Get("/api/vouchers", h.listVouchers)
			r.Post("/api/vouchers", h.addVoucher)
			r.Put("/api/vouchers/{id}", h.updateVoucher)
			r.Delete("/api/vouchers/{id}", h.deleteVoucher)

			// Settings
			r.Get("/api/settings", h.getSettings)
			r.Put("/api/settings", h.updateSettings)
			r.Post("/api/settings/password", h.setPassword)

			// Backups
			r.Get("/api/backup/export", h.exportBackup)
			r.Post("/api/backup/restore-auto", h.restoreAutoBackup)
			r.Post("/api/backup/clear", h.clearData)

			r.Post("/api/assistant", h.ask)
		})
	})

	h.router = r
	return r
}

// health reports service status and whether the password gate is on.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status          string `json:"status"`
		PasswordEnabled bool   `json:"passwordEnabled"`
	}
	resp := response{Status: "ok"}
	if st, err := h.svc.GetSettings(r.Context()); err == nil {
		resp.PasswordEnabled = st.IsPasswordEnabled
	}
	writeJSON(w, resp)
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetState(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res.Snapshot)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.GetSummary(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sum)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.GetSettings(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, st)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in core.Settings
	if !decodeJSON(w, r, &in) {
		return
	}
	st, err := h.svc.UpdateSettings(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, st)
}

func (h *Handler) setPassword(w http.ResponseWriter, r *http.Request) {
	var req app.SetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.SetPassword(r.Context(), req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ask handles POST /api/assistant.
func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	reply, err := h.svc.Ask(r.Context(), req.Prompt)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, reply)
}

// pathKind parses the {kind} URL parameter, writing a 400 on failure.
func (h *Handler) pathKind(w http.ResponseWriter, r *http.Request) (core.PersonKind, bool) {
	kind, err := core.ParsePersonKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return 0, false
	}
	return kind, true
}

// decodeJSON decodes the request body into v and returns false after writing
// an error response on failure: 413 when the body exceeds the limit set by
// RequestBodyLimit, 400 for anything else.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
