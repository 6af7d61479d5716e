package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"files-manager/internal/dto"
	"files-manager/internal/middleware"
	"files-manager/internal/services"
	"files-manager/utils/response"
)

type FileHandler struct {
	files *services.FileService
	auth  *services.AuthService
}

func NewFileHandler(files *services.FileService, auth *services.AuthService) *FileHandler {
	return &FileHandler{files: files, auth: auth}
}

// Upload handles POST /files, creating a folder or storing a file blob.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.files.Create(r.Context(), userID, &req)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, file)
}

// Show handles GET /files/{id}.
func (h *FileHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	file, err := h.files.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, file)
}

// Index handles GET /files with optional parentId and page query parameters.
func (h *FileHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil {
		page = 0
	}

	files, err := h.files.List(r.Context(), userID, r.URL.Query().Get("parentId"), page)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, files)
}

// Publish handles PUT /files/{id}/publish.
func (h *FileHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, true)
}

// Unpublish handles PUT /files/{id}/unpublish.
func (h *FileHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, false)
}

func (h *FileHandler) setPublic(w http.ResponseWriter, r *http.Request, public bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	file, err := h.files.SetPublic(r.Context(), userID, r.PathValue("id"), public)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, file)
}

// Data handles GET /files/{id}/data. The token is optional: public files are
// served to anyone, private ones only to their owner.
func (h *FileHandler) Data(w http.ResponseWriter, r *http.Request) {
	var requester *primitive.ObjectID
	if token := r.Header.Get("X-Token"); token != "" {
		if userID, err := h.auth.ResolveSession(r.Context(), token); err == nil {
			requester = &userID
		}
	}

	data, contentType, err := h.files.Content(r.Context(), requester, r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
