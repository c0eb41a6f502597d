package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/localekit/internal/translations"
	"github.com/dmitrymomot/localekit/pkg/matrix"
)

const (
	maxMultipartMemory = 8 << 20
	// maxMatrixLimit is the page size used when limit is absent or larger.
	maxMatrixLimit = 1000
)

func (a *api) listEntries(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	entries, err := a.svc.ListEntries(r.Context(), id)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, entries)
}

func (a *api) matrix(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	issues, err := matrix.ParseIssue(query(r, "issues", ""))
	if err != nil {
		return err
	}

	view, err := a.svc.Matrix(r.Context(), id, matrix.Filter{
		Namespace: query(r, "namespace", ""),
		Query:     query(r, "q", ""),
		Issues:    issues,
		Offset:    max(query(r, "offset", 0), 0),
		Limit:     matrixLimit(query(r, "limit", 0)),
	})
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, view)
}

func matrixLimit(n int) int {
	if n <= 0 || n > maxMatrixLimit {
		return maxMatrixLimit
	}
	return n
}

func (a *api) stats(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	stats, err := a.svc.Stats(r.Context(), id)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, stats)
}

func (a *api) importZip(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	data, err := upload(r, maxMultipartMemory)
	if err != nil {
		return err
	}
	mode, err := translations.ParseMode(r.FormValue("mode"))
	if err != nil {
		return err
	}

	res, err := a.svc.ImportArchive(r.Context(), id, data, mode)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, res)
}

func (a *api) importJSON(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	data, err := upload(r, maxMultipartMemory)
	if err != nil {
		return err
	}
	mode, err := translations.ParseMode(r.FormValue("mode"))
	if err != nil {
		return err
	}

	res, err := a.svc.ImportJSON(r.Context(), id, translations.JSONImport{
		Locale:    r.FormValue("locale"),
		Namespace: r.FormValue("namespace"),
		Mode:      mode,
	}, data)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, res)
}

func (a *api) previewZip(w http.ResponseWriter, r *http.Request) error {
	if _, err := projectID(r); err != nil {
		return err
	}
	data, err := upload(r, maxMultipartMemory)
	if err != nil {
		return err
	}
	res, err := a.svc.PreviewArchive(data)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, res)
}

func (a *api) previewJSON(w http.ResponseWriter, r *http.Request) error {
	if _, err := projectID(r); err != nil {
		return err
	}
	data, err := upload(r, maxMultipartMemory)
	if err != nil {
		return err
	}
	res, err := a.svc.PreviewJSON(data)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, res)
}

func (a *api) export(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	data, err := a.svc.ExportArchive(r.Context(), id)
	if err != nil {
		return err
	}

	name := "translations-" + time.Now().UTC().Format("20060102-150405") + ".zip"
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

func (a *api) publishExport(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	pub, err := a.svc.PublishExport(r.Context(), id)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusCreated, pub)
}

func (a *api) updateEntry(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	var in translations.UpdateEntry
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	e, err := a.svc.UpdateEntry(r.Context(), id, in)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, e)
}

func (a *api) addKey(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	var in translations.AddKey
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	created, err := a.svc.AddKey(r.Context(), id, in)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusCreated, created)
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (a *api) renameKey(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	var in translations.RenameKey
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	n, err := a.svc.RenameKey(r.Context(), id, in)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, countResponse{Count: n})
}

func (a *api) deleteKey(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	n, err := a.svc.DeleteKey(r.Context(), id, query(r, "namespace", ""), query(r, "dotKey", ""))
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, countResponse{Count: n})
}

func (a *api) addLocale(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	var in struct {
		Locale string `json:"locale"`
	}
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	created, err := a.svc.AddLocale(r.Context(), id, in.Locale)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusCreated, created)
}

func (a *api) deleteLocale(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	n, err := a.svc.DeleteLocale(r.Context(), id, chi.URLParam(r, "locale"))
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, countResponse{Count: n})
}

func (a *api) syncTarget(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	t, err := a.svc.SyncTarget(r.Context(), id)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, t)
}

func (a *api) saveSyncTarget(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	var in translations.SyncTargetInput
	if err := decodeJSON(r, &in); err != nil {
		return err
	}
	t, err := a.svc.SaveSyncTarget(r.Context(), id, in)
	if err != nil {
		return err
	}
	return writeOK(w, http.StatusOK, t)
}

func (a *api) requestSync(w http.ResponseWriter, r *http.Request) error {
	id, err := projectID(r)
	if err != nil {
		return err
	}
	var req translations.SyncRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			return err
		}
	}
	if err := a.svc.RequestSync(r.Context(), id, req); err != nil {
		return err
	}
	return writeOK(w, http.StatusAccepted, nil)
}
