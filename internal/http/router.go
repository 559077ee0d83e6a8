package http

import (
	nethttp "net/http"

	"lineup-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.Handle("/health", handler)
	mux.Handle("/ready", handler)
	mux.Handle("/opponents", handler)
	mux.Handle("/teams/", handler)
	if admin != nil {
		mux.HandleFunc("/admin/purge", admin.PurgeSnapshots)
	}
	return mux
}
