package handlers

import (
	"net/http"

	"github.com/coachpoint/backend/internal/domain/model"
	resourcessvc "github.com/coachpoint/backend/internal/services/resources"
	statssvc "github.com/coachpoint/backend/internal/services/stats"
	userssvc "github.com/coachpoint/backend/internal/services/users"
	"github.com/coachpoint/backend/internal/transport/http/dto"
	"github.com/coachpoint/backend/internal/transport/http/respond"
)

type AdminHandler struct {
	users     *userssvc.Service
	resources *resourcessvc.Service
	stats     *statssvc.Service
}

func NewAdminHandler(users *userssvc.Service, resources *resourcessvc.Service, stats *statssvc.Service) *AdminHandler {
	return &AdminHandler{users: users, resources: resources, stats: stats}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeInternal(w)
		return
	}

	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		writeInternal(w)
		return
	}

	activities := make([]dto.RecentActivityResponse, 0, len(stats.RecentActivities))
	for _, a := range stats.RecentActivities {
		activities = append(activities, dto.RecentActivityResponse{
			StudentName:  a.StudentName,
			Category:     a.Category.String(),
			ResourceName: a.ResourceName,
			CompletedAt:  formatTime(a.CompletedAt),
		})
	}

	respond.OK(w, dto.DashboardResponse{
		TotalStudents:     stats.TotalStudents,
		ActiveStudents:    stats.ActiveStudents,
		TotalResources:    stats.TotalResources,
		AvgCompletionRate: stats.AvgCompletionRate,
		RecentSignups:     stats.RecentSignups,
		RecentActivities:  activities,
	})
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w)
		return
	}

	page, err := h.users.ListPage(r.Context(), queryInt(r, "page", "1"))
	if err != nil {
		writeInternal(w)
		return
	}

	users := make([]dto.AdminUserResponse, 0, len(page.Users))
	for _, u := range page.Users {
		users = append(users, adminUserResponse(u))
	}

	respond.OK(w, dto.AdminUserPageResponse{
		Users:      users,
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	})
}

func (h *AdminHandler) User(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w)
		return
	}

	userID, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid user id")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	respond.OK(w, userResponse(user))
}

func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	if h.users == nil {
		writeInternal(w)
		return
	}

	userID, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid user id")
		return
	}

	var req dto.UserStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.SetStatus(r.Context(), userID, req.IsActive)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	respond.OK(w, userResponse(user))
}

func (h *AdminHandler) UserProgress(w http.ResponseWriter, r *http.Request) {
	if h.resources == nil {
		writeInternal(w)
		return
	}

	userID, ok := urlParamID(r, "id")
	if !ok {
		writeBadRequest(w, "Invalid user id")
		return
	}

	details, err := h.resources.ProgressDetail(r.Context(), userID)
	if err != nil {
		handleResourceError(w, err)
		return
	}

	out := make([]dto.ProgressDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, progressDetailResponse(d))
	}
	respond.OK(w, out)
}

func adminUserResponse(u model.UserWithStats) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		UserResponse:       userResponse(u.User),
		ResourcesAssigned:  u.ResourcesAssigned,
		ResourcesCompleted: u.ResourcesCompleted,
		AvgCompletion:      u.AvgCompletion,
	}
}

func progressDetailResponse(d model.ProgressDetail) dto.ProgressDetailResponse {
	return dto.ProgressDetailResponse{
		ProgressResponse: progressResponse(d.Assignment),
		ResourceName:     d.ResourceName,
		ResourceType:     d.ResourceType,
		AssignedByName:   d.AssignedByName,
		CompletedByName:  d.CompletedByName,
		AssignedAt:       formatTime(d.AssignedAt),
	}
}
