package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// int64Param parses a chi URL parameter as a positive int64 ID.
func int64Param(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
