// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const msgClientNotBuilt = "Client not built. Run npm run build in /client"

// SPA serves the pre-built client bundle from dir. Paths that do not name
// a file fall back to index.html so client-side routes work; without a
// bundle every path answers 404 with a JSON hint.
func SPA(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": msgClientNotBuilt})
			return
		}

		clean := path.Clean("/" + r.URL.Path)
		if strings.HasPrefix(clean, "/api/") || clean == "/api" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(clean))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			http.ServeFile(w, r, file)
			return
		}
		http.ServeFile(w, r, index)
	}
}
