package web

import (
	"fmt"
	"net/http"
	"time"

	"ledgerpro/internal/persistence"
)

// exportBackup handles GET /api/backup/export and serves the whole book as a
// downloadable JSON document.
func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportData(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename=%q`, persistence.BackupFileName(time.Now())))
	_, _ = w.Write(data)
}

// importBackup handles POST /api/backup/import. The document replaces the
// whole book; a malformed one is rejected and nothing changes.
func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	data, ok := readUpload(w, r)
	if !ok {
		return
	}
	if err := h.svc.ImportData(r.Context(), data); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreAutoBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RestoreAutoBackup(r.Context()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearData(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearData(r.Context()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
