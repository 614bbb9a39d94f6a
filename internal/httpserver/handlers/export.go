package handlers

import (
	"fmt"
	"net/http"

	"github.com/hversten/bookmirror/internal/httpserver/deps"
	"github.com/hversten/bookmirror/internal/logger"
	"github.com/hversten/bookmirror/internal/sources/htmlfile"
)

// Export renders the mirrored tree as a Netscape bookmark file, the
// format every browser's import dialog accepts.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := htmlfile.ExportHTML(d.Registry)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", htmlfile.DefaultExportName()))
		if _, err := w.Write([]byte(out)); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}
