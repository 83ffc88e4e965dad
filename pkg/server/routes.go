package server

import "daybook-hq/daybook/pkg/http1"

// staticRoutes maps URL paths to asset file names.
var staticRoutes = map[string]string{
	"/":                     "index.html",
	"/index.html":           "index.html",
	"/style.css":            "style.css",
	"/script.js":            "script.js",
	"/Diary.png":            "Diary.png",
	"/diary_background.jpg": "diary_background.jpg",
}

// Routes builds the route table. Unmatched paths get the router's default
// 404 page.
func (h *Handlers) Routes() *http1.Router {
	r := http1.NewRouter()

	for path, name := range staticRoutes {
		r.Handle("GET", path, h.StaticAsset(name))
	}

	r.Handle("POST", "/login", h.Login)
	r.Handle("POST", "/register", h.Register)
	r.Handle("GET", "/logout", h.Logout)
	r.Handle("POST", "/entry/create", h.CreateEntry)
	r.Handle("GET", "/entry/view", h.ViewEntries)
	r.Handle("POST", "/entry/edit", h.EditEntry)
	r.Handle("GET", "/entry/delete", h.DeleteEntry)
	r.Handle("GET", "/entry/search", h.SearchEntries)
	r.Handle("GET", "/entry/export", h.ExportEntries)

	return r
}
