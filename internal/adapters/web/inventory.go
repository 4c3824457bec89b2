package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ledgerpro/internal/core"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListInventory(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"items": res.Items, "lowStock": res.LowStock})
}

func (h *Handler) addInventoryItem(w http.ResponseWriter, r *http.Request) {
	var item core.InventoryItem
	if !decodeJSON(w, r, &item) {
		return
	}
	out, err := h.svc.AddInventoryItem(r.Context(), item)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeCreated(w, out)
}

func (h *Handler) updateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var item core.InventoryItem
	if !decodeJSON(w, r, &item) {
		return
	}
	item.ID = chi.URLParam(r, "id")
	out, err := h.svc.UpdateInventoryItem(r.Context(), item)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h *Handler) deleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInventoryItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// importInventory handles POST /api/inventory/import. The workbook arrives
// either as the "file" field of a multipart form or as the raw body.
func (h *Handler) importInventory(w http.ResponseWriter, r *http.Request) {
	data, ok := readUpload(w, r)
	if !ok {
		return
	}
	res, err := h.svc.ImportInventory(r.Context(), bytes.NewReader(data))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"added": res.Added, "updated": res.Updated})
}

func (h *Handler) exportInventory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.ExportInventory(r.Context(), &buf); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="inventory_%s.xlsx"`, time.Now().Format("2006-01-02")))
	_, _ = w.Write(buf.Bytes())
}

// readUpload returns the uploaded file bytes, writing an error response and
// returning false on failure.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	var src io.Reader = r.Body
	if f, _, err := r.FormFile("file"); err == nil {
		defer f.Close()
		src = f
	} else if !errors.Is(err, http.ErrNotMultipart) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "upload too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		writeError(w, r, "malformed upload: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}

	data, err := io.ReadAll(src)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "upload too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		writeError(w, r, "failed to read upload", "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	if len(data) == 0 {
		writeError(w, r, "no file provided", "BAD_REQUEST", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}
