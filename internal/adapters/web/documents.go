package web

import (
	"net/http"

	"ledgerpro/internal/core"

	"github.com/go-chi/chi/v5"
)

// ── Invoices ──────────────────────────────────────────────────────────────────

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListInvoices(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res.Invoices)
}

func (h *Handler) addInvoice(w http.ResponseWriter, r *http.Request) {
	var inv core.Invoice
	if !decodeJSON(w, r, &inv) {
		return
	}
	out, err := h.svc.AddInvoice(r.Context(), inv)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, out)
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv core.Invoice
	if !decodeJSON(w, r, &inv) {
		return
	}
	inv.ID = chi.URLParam(r, "id")
	out, err := h.svc.UpdateInvoice(r.Context(), inv)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Vouchers ──────────────────────────────────────────────────────────────────

func (h *Handler) listVouchers(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListVouchers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res.Vouchers)
}

func (h *Handler) addVoucher(w http.ResponseWriter, r *http.Request) {
	var v core.Voucher
	if !decodeJSON(w, r, &v) {
		return
	}
	out, err := h.svc.AddVoucher(r.Context(), v)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, out)
}

func (h *Handler) updateVoucher(w http.ResponseWriter, r *http.Request) {
	var v core.Voucher
	if !decodeJSON(w, r, &v) {
		return
	}
	v.ID = chi.URLParam(r, "id")
	out, err := h.svc.UpdateVoucher(r.Context(), v)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h *Handler) deleteVoucher(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVoucher(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
