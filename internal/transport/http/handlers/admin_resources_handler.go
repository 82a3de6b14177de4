package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	resourcessvc "github.com/coachpoint/backend/internal/services/resources"
	storagesvc "github.com/coachpoint/backend/internal/services/storage"
	"github.com/coachpoint/backend/internal/transport/http/dto"
	"github.com/coachpoint/backend/internal/transport/http/respond"
)

const multipartMemoryLimit = 32 << 20

type AdminResourcesHandler struct {
	resources *resourcessvc.Service
	storage   *storagesvc.Service
}

func NewAdminResourcesHandler(resources *resourcessvc.Service, storage *storagesvc.Service) *AdminResourcesHandler {
	return &AdminResourcesHandler{resources: resources, storage: storage}
}

func (h *AdminResourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil {
		writeInternal(w)
		return
	}

	items, err := h.resources.List(r.Context())
	if err != nil {
		writeInternal(w)
		return
	}

	out := make([]dto.ResourceResponse, 0, len(items))
	for _, res := range items {
		out = append(out, resourceResponse(res))
	}
	respond.OK(w, out)
}

// Upload takes a multipart form: the file plus name, description, type and
// duration fields. The stored location depends on whether S3 is reachable.
func (h *AdminResourcesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil || h.storage == nil {
		writeInternal(w)
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeBadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "A file is required")
		return
	}
	defer file.Close()

	stored, err := h.storage.Upload(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		handleUploadError(w, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	res, err := h.resources.Create(r.Context(), model.Resource{
		Name:        name,
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		FileSize:    formatFileSize(stored.Size),
		Duration:    r.FormValue("duration"),
		Storage:     stored.Storage,
		FileID:      stored.FileID,
		FileURL:     stored.FileURL,
		CreatedBy:   identity.UserID,
	})
	if err != nil {
		// The file landed but the row did not. Remove the orphan so the
		// bucket does not accumulate unreferenced objects.
		_ = h.storage.Delete(r.Context(), stored.Storage, stored.FileID)
		handleResourceError(w, err)
		return
	}

	respond.Created(w, resourceResponse(res))
}

func (h *AdminResourcesHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid resource id")
		return
	}

	var req dto.ResourceUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	res, err := h.resources.Update(r.Context(), id, model.ResourceUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		handleResourceError(w, err)
		return
	}

	respond.OK(w, resourceResponse(res))
}

func (h *AdminResourcesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil {
		writeInternal(w)
		return
	}

	id, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid resource id")
		return
	}

	if err := h.resources.Deactivate(r.Context(), id); err != nil {
		handleResourceError(w, err)
		return
	}

	respond.OK(w, dto.CreatedResponse{ID: id})
}

func (h *AdminResourcesHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil {
		writeInternal(w)
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	var req dto.AssignResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	category, ok := enums.ParseResourceCategory(req.Category)
	if !ok {
		writeBadRequest(w, "Unknown category")
		return
	}

	id, err := h.resources.Assign(r.Context(), req.UserID, req.ResourceID, category, identity.UserID)
	if err != nil {
		handleResourceError(w, err)
		return
	}

	respond.Created(w, dto.CreatedResponse{ID: id})
}

func (h *AdminResourcesHandler) MarkCategoryComplete(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil {
		writeInternal(w)
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	var req dto.MarkCategoryCompleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	category, ok := enums.ParseResourceCategory(req.Category)
	if !ok {
		writeBadRequest(w, "Unknown category")
		return
	}

	updated, err := h.resources.MarkCategoryComplete(r.Context(), req.UserID, category, identity.UserID)
	if err != nil {
		handleResourceError(w, err)
		return
	}

	respond.OK(w, map[string]int64{"updated": updated})
}

func handleUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storagesvc.ErrTypeNotAllowed):
		respond.ValidationFailed(w, map[string]string{"file": "File type is not allowed"})
	case errors.Is(err, storagesvc.ErrFileTooLarge):
		respond.ValidationFailed(w, map[string]string{"file": "File exceeds the size limit"})
	case errors.Is(err, storagesvc.ErrInvalidFile):
		writeBadRequest(w, "Invalid file")
	default:
		writeInternal(w)
	}
}

func resourceResponse(res model.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:            res.ID,
		Name:          res.Name,
		Description:   res.Description,
		Type:          res.Type,
		FileSize:      res.FileSize,
		Duration:      res.Duration,
		Storage:       res.Storage,
		FileURL:       res.FileURL,
		ThumbnailURL:  res.ThumbnailURL,
		DownloadCount: res.DownloadCount,
		IsActive:      res.IsActive,
		CreatedByName: res.CreatedByName,
		CreatedAt:     formatTime(res.CreatedAt),
	}
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGT"[exp])
}
