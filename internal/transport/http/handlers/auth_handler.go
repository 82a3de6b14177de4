package handlers

import (
	"errors"
	"net/http"

	"github.com/coachpoint/backend/internal/domain/model"
	"github.com/coachpoint/backend/internal/pkg/validate"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	"github.com/coachpoint/backend/internal/transport/http/dto"
	"github.com/coachpoint/backend/internal/transport/http/respond"
)

type AuthHandler struct {
	service *authsvc.Service
}

func NewAuthHandler(service *authsvc.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w)
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	if fieldErrors := validate.Register(req.Email, req.Password, req.WhatsappNumber); len(fieldErrors) > 0 {
		respond.ValidationFailed(w, fieldErrors)
		return
	}

	res, err := h.service.Register(r.Context(), authsvc.Registration{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		WhatsappNumber: req.WhatsappNumber,
	})
	if err != nil {
		handleAuthError(w, err)
		return
	}

	respond.Created(w, authResponse(res, h.service.TokenTTL()))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w)
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	if fieldErrors := validate.Login(req.Email, req.Password); len(fieldErrors) > 0 {
		respond.ValidationFailed(w, fieldErrors)
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	respond.OK(w, authResponse(res, h.service.TokenTTL()))
}

// Logout is a no-op on the server: tokens are stateless and simply expire.
// The endpoint exists so clients have a uniform place to drop their copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, dto.LogoutResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w)
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	user, err := h.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	respond.OK(w, userResponse(user))
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "Invalid request")
	case errors.Is(err, authsvc.ErrEmailTaken):
		respond.Error(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, authsvc.ErrUserNotFound):
		writeNotFound(w, "User not found")
	default:
		writeInternal(w)
	}
}

func authResponse(res authsvc.AuthResult, expiresIn int64) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     res.Token,
		ExpiresIn: expiresIn,
		User:      userResponse(res.User),
	}
}

func userResponse(user model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		WhatsappNumber: user.WhatsappNumber,
		Location:       user.Location,
		TargetScore:    user.TargetScore,
		Role:           user.Role.String(),
		IsActive:       user.IsActive,
		CreatedAt:      formatTime(user.CreatedAt),
	}
}
