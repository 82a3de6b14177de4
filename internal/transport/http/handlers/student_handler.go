package handlers

import (
	"errors"
	"net/http"

	"github.com/coachpoint/backend/internal/domain/enums"
	"github.com/coachpoint/backend/internal/domain/model"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	resourcessvc "github.com/coachpoint/backend/internal/services/resources"
	userssvc "github.com/coachpoint/backend/internal/services/users"
	"github.com/coachpoint/backend/internal/transport/http/dto"
	"github.com/coachpoint/backend/internal/transport/http/respond"
)

type StudentHandler struct {
	resources *resourcessvc.Service
	users     *userssvc.Service
}

func NewStudentHandler(resources *resourcessvc.Service, users *userssvc.Service) *StudentHandler {
	return &StudentHandler{resources: resources, users: users}
}

func (h *StudentHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil {
		writeInternal(w)
		return
	}

	categories := h.resources.Categories()
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.String())
	}
	respond.OK(w, out)
}

func (h *StudentHandler) Resources(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var category *enums.ResourceCategory
	if raw := r.URL.Query().Get("category"); raw != "" {
		parsed, ok := enums.ParseResourceCategory(raw)
		if !ok {
			writeBadRequest(w, "Unknown category")
			return
		}
		category = &parsed
	}

	items, err := h.resources.AssignedTo(r.Context(), identity.UserID, category)
	if err != nil {
		writeInternal(w)
		return
	}

	out := make([]dto.AssignedResourceResponse, 0, len(items))
	for _, item := range items {
		out = append(out, assignedResourceResponse(item))
	}
	respond.OK(w, out)
}

func (h *StudentHandler) ViewResource(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	resourceID, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid resource id")
		return
	}

	res, viewURL, err := h.resources.View(r.Context(), identity.UserID, resourceID)
	if err != nil {
		handleResourceError(w, err)
		return
	}

	respond.OK(w, dto.ResourceViewResponse{
		ResourceID: res.ID,
		Name:       res.Name,
		Type:       res.Type,
		ViewURL:    viewURL,
	})
}

func (h *StudentHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	resourceID, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid resource id")
		return
	}

	var req dto.ProgressUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	assignment, err := h.resources.UpdateProgress(r.Context(), identity.UserID, resourceID, model.ProgressUpdate{
		CompletionPercentage: req.CompletionPercentage,
		TimeSpentMinutes:     req.TimeSpentMinutes,
	})
	if err != nil {
		handleResourceError(w, err)
		return
	}

	respond.OK(w, progressResponse(assignment))
}

func (h *StudentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	summaries, err := h.resources.Summary(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w)
		return
	}

	out := make([]dto.CategorySummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.CategorySummaryResponse{
			Category:           s.Category.String(),
			TotalResources:     s.TotalResources,
			CompletedResources: s.CompletedResources,
			AvgCompletion:      s.AvgCompletion,
			TotalTimeSpent:     s.TotalTimeSpent,
		})
	}
	respond.OK(w, out)
}

func (h *StudentHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), identity.UserID)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	respond.OK(w, userResponse(user))
}

func (h *StudentHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.ProfileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), identity.UserID, model.ProfileUpdate{
		FullName:       req.FullName,
		WhatsappNumber: req.WhatsappNumber,
		Location:       req.Location,
		TargetScore:    req.TargetScore,
	})
	if err != nil {
		handleAuthError(w, err)
		return
	}

	respond.OK(w, userResponse(user))
}

func (h *StudentHandler) requireIdentity(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	if h.resources == nil || h.users == nil {
		writeInternal(w)
		return authsvc.Identity{}, false
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return authsvc.Identity{}, false
	}

	return identity, true
}

func handleResourceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resourcessvc.ErrInvalidInput):
		writeBadRequest(w, "Invalid request")
	case errors.Is(err, resourcessvc.ErrNotAssigned):
		respond.Error(w, http.StatusForbidden, "Resource is not assigned to you")
	case errors.Is(err, resourcessvc.ErrAlreadyAssigned):
		respond.Error(w, http.StatusConflict, "Resource is already assigned")
	case errors.Is(err, resourcessvc.ErrResourceNotFound):
		writeNotFound(w, "Resource not found")
	default:
		writeInternal(w)
	}
}

func assignedResourceResponse(item model.AssignedResource) dto.AssignedResourceResponse {
	return dto.AssignedResourceResponse{
		AssignmentID:         item.ID,
		ResourceID:           item.ResourceID,
		Name:                 item.ResourceName,
		Description:          item.Description,
		Type:                 item.ResourceType,
		FileSize:             item.FileSize,
		Duration:             item.Duration,
		ThumbnailURL:         item.ThumbnailURL,
		Category:             item.Category.String(),
		CompletionPercentage: item.CompletionPercentage,
		TimeSpentMinutes:     item.TimeSpentMinutes,
		IsCompleted:          item.IsCompleted,
		AssignedAt:           formatTime(item.AssignedAt),
		LastAccessedAt:       formatTimePtr(item.LastAccessedAt),
		CompletedAt:          formatTimePtr(item.CompletedAt),
	}
}

func progressResponse(a model.Assignment) dto.ProgressResponse {
	return dto.ProgressResponse{
		AssignmentID:         a.ID,
		ResourceID:           a.ResourceID,
		Category:             a.Category.String(),
		CompletionPercentage: a.CompletionPercentage,
		TimeSpentMinutes:     a.TimeSpentMinutes,
		IsCompleted:          a.IsCompleted,
		CompletedAt:          formatTimePtr(a.CompletedAt),
	}
}
