package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/api"
	"github.com/damda-platform/damda-admin/internal/audit"
)

type Handler struct {
	authSvc  *Service
	repo     Repository
	sink     audit.Sink
	validate *validator.Validate
}

func NewHandler(authSvc *Service, repo Repository, sink audit.Sink) *Handler {
	return &Handler{
		authSvc:  authSvc,
		repo:     repo,
		sink:     sink,
		validate: validator.New(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type loginResponse struct {
	Admin  *Admin     `json:"admin"`
	Tokens *TokenPair `json:"tokens"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	admin, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("getting admin by email", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	if admin == nil {
		api.HandleError(w, api.ErrInvalidCredentials)
		return
	}

	if err := ComparePassword(admin.PasswordHash, req.Password); err != nil {
		api.HandleError(w, api.ErrInvalidCredentials)
		return
	}

	tokens, err := h.authSvc.GenerateTokens(r.Context(), admin.ID.String(), admin.Email, admin.Role)
	if err != nil {
		slog.Error("generating tokens", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	now := time.Now()
	if err := h.repo.TouchLastLogin(r.Context(), admin.ID, now); err != nil {
		slog.Warn("updating last login", "error", err, "admin", admin.ID)
	}
	admin.LastLoginAt = &now

	h.sink.Record(r.Context(), audit.Record{
		ID:         uuid.New(),
		ActorID:    admin.ID,
		Action:     audit.ActionLogin,
		TargetType: audit.TargetAdmin,
		TargetID:   admin.ID.String(),
		OccurredAt: now,
	})

	api.JSON(w, http.StatusOK, loginResponse{Admin: admin, Tokens: tokens})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	tokens, err := h.authSvc.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		api.HandleError(w, api.ErrInvalidToken)
		return
	}

	api.JSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetAdminClaims(r.Context())
	if claims == nil {
		api.HandleError(w, api.ErrUnauthorized)
		return
	}

	if err := h.authSvc.Logout(r.Context(), claims.AdminID); err != nil {
		slog.Error("revoking refresh tokens", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	actorID := ActorID(r.Context())
	h.sink.Record(r.Context(), audit.Record{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     audit.ActionLogout,
		TargetType: audit.TargetAdmin,
		TargetID:   claims.AdminID,
		OccurredAt: time.Now(),
	})

	api.JSONMessage(w, http.StatusOK, "logged out")
}
