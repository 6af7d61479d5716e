package handlers

import (
	"context"
	"net/http"

	"files-manager/utils/response"
)

type DataStore interface {
	IsAlive(ctx context.Context) bool
	NbUsers(ctx context.Context) (int64, error)
	NbFiles(ctx context.Context) (int64, error)
}

type SessionCache interface {
	IsAlive(ctx context.Context) bool
}

type AppHandler struct {
	db    DataStore
	cache SessionCache
}

func NewAppHandler(db DataStore, cache SessionCache) *AppHandler {
	return &AppHandler{db: db, cache: cache}
}

type statusResponse struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type statsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Status handles GET /status, reporting store liveness.
func (h *AppHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, statusResponse{
		Redis: h.cache.IsAlive(r.Context()),
		DB:    h.db.IsAlive(r.Context()),
	})
}

// Stats handles GET /stats, reporting collection counts.
func (h *AppHandler) Stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.NbUsers(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	files, err := h.db.NbFiles(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, statsResponse{Users: users, Files: files})
}
