package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
)

// TokenIssuer issues and parses signed access tokens
type TokenIssuer interface {
	// Issue creates a signed token for the user
	Issue(userID, tenantID uuid.UUID, username string) (token string, expiresAt time.Time, err error)
	// Parse validates a token and returns its claims
	Parse(token string) (*TokenClaims, error)
}

// TokenClaims are the claims carried by an access token
type TokenClaims struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Username string
	TokenID  string
	ExpireAt time.Time
}

// TokenBlacklist invalidates tokens before their natural expiry
type TokenBlacklist interface {
	// Revoke marks a token ID as unusable until it would have expired
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	// IsRevoked reports whether a token ID has been revoked
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RegisterRequest creates a user account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
}

// UserResponse is the API view of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AuthService handles registration, login and logout
type AuthService struct {
	userRepo  identity.UserRepository
	issuer    TokenIssuer
	blacklist TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, issuer TokenIssuer, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		issuer:    issuer,
		blacklist: blacklist,
	}
}

// Register creates a new active user
func (s *AuthService) Register(ctx context.Context, tenantID uuid.UUID, req RegisterRequest) (*UserResponse, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, tenantID, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(tenantID, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// Login verifies the credentials and issues a token. Failed lookups
// and wrong passwords return the same error so usernames cannot be
// enumerated.
func (s *AuthService) Login(ctx context.Context, tenantID uuid.UUID, req LoginRequest) (*LoginResponse, error) {
	invalid := shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

	user, err := s.userRepo.FindByUsername(ctx, tenantID, req.Username)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive() || !user.VerifyPassword(req.Password) {
		return nil, invalid
	}

	token, expiresAt, err := s.issuer.Issue(user.ID, user.TenantID, user.Username)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
	}, nil
}

// Logout revokes the token until its natural expiry
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return shared.ErrUnauthorized
	}
	return s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpireAt)
}

// Verify parses the token and rejects revoked ones
func (s *AuthService) Verify(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, shared.ErrUnauthorized
	}
	return claims, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *AuthService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, current, next string) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(current) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is wrong")
	}
	if err := user.ChangePassword(next); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
	}
}
