package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/identity"
	"github.com/wims/backend/internal/interfaces/http/dto"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves registration, login and session endpoints
type AuthHandler struct {
	BaseHandler
	auth *identity.AuthService
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(auth *identity.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{BaseHandler: NewBaseHandler(log), auth: auth}
}

// registerRequest wraps the application request with the tenant the
// account belongs to. An empty tenant_id bootstraps a new tenant.
type registerRequest struct {
	TenantID string `json:"tenant_id" binding:"omitempty,uuid"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Register creates a user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	tenantID := uuid.New()
	if req.TenantID != "" {
		parsed, err := uuid.Parse(req.TenantID)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid tenant_id")
			return
		}
		tenantID = parsed
	}

	user, err := h.auth.Register(c.Request.Context(), tenantID, identity.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// loginRequest carries credentials plus the tenant to log into
type loginRequest struct {
	TenantID string `json:"tenant_id" binding:"required,uuid"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "invalid tenant_id")
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), tenantID, identity.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout revokes the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		h.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ChangePassword updates the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), tenantID, userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me returns the authenticated identity from the token claims
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	tenantID, _ := h.tenantID(c)
	h.Success(c, gin.H{
		"user_id":   userID,
		"tenant_id": tenantID,
		"username":  middleware.GetUsername(c),
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
