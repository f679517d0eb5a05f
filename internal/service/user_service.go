package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"vendordocs/internal/model"
	"vendordocs/internal/permission"
	"vendordocs/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`

	// VendorID is required for vendor-role users, forbidden otherwise.
	VendorID              string `json:"vendor_id"`
	RequiresLoginApproval bool   `json:"requires_login_approval"`
}

type UpdateUserRequest struct {
	Username              string `json:"username"`
	Email                 string `json:"email" binding:"omitempty,email"`
	Phone                 string `json:"phone"`
	RequiresLoginApproval *bool  `json:"requires_login_approval"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RedeemLoginRequest struct {
	ApprovalID   string `json:"approval_id" binding:"required"`
	RequestToken string `json:"request_token" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult carries either issued tokens or, for vendors whose account is
// flagged for sign-off, the pending login approval to poll.
type LoginResult struct {
	Tokens          *TokenResponse        `json:"tokens,omitempty"`
	PendingApproval *PendingLoginResponse `json:"pending_approval,omitempty"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID                    uuid.UUID `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	Role                  string    `json:"role"`
	VendorID              *string   `json:"vendor_id,omitempty"`
	RequiresLoginApproval bool      `json:"requires_login_approval"`
	CreatedAt             string    `json:"created_at"`
	UpdatedAt             string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*LoginResult, error)
	RedeemApprovedLogin(ctx context.Context, approvalID, requestToken string) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo           repository.UserRepository
	loginApprovals LoginApprovalService
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, loginApprovals LoginApprovalService) UserService {
	return &userService{repo: repo, loginApprovals: loginApprovals}
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	resp := &UserResponse{
		ID:                    user.ID,
		Username:              user.Username,
		Email:                 user.Email,
		Phone:                 user.Phone,
		Role:                  user.Role,
		RequiresLoginApproval: user.RequiresLoginApproval,
		CreatedAt:             user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             user.UpdatedAt.Format(time.RFC3339),
	}
	if user.VendorID != nil {
		v := user.VendorID.String()
		resp.VendorID = &v
	}
	return resp
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role := permission.Role(req.Role)
	if !permission.ValidRole(role) {
		return nil, errors.New("invalid role: must be admin, consultant, cross_verifier, approver, or vendor")
	}

	// Basic Email format validation fallback
	emailRegex := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)
	if !emailRegex.MatchString(req.Email) {
		return nil, errors.New("invalid email format")
	}

	var vendorID *uuid.UUID
	if role == permission.RoleVendor {
		if req.VendorID == "" {
			return nil, errors.New("vendor_id is required for vendor users")
		}
		parsed, parseErr := uuid.Parse(req.VendorID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid vendor_id: %w", parseErr)
		}
		vendorID = &parsed
	} else if req.VendorID != "" {
		return nil, errors.New("vendor_id is only valid for vendor users")
	}

	// Double check username/email uniqueness via repo directly
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errors.New("username already exists")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	// Hash password automatically
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Username:              req.Username,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Password:              string(hashedPassword),
		Role:                  req.Role,
		VendorID:              vendorID,
		RequiresLoginApproval: role == permission.RoleVendor && req.RequiresLoginApproval,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	// Flagged vendor accounts wait for an explicit sign-off before tokens
	// are issued. The caller polls the approval with the returned token.
	if user.RequiresLoginApproval && user.VendorID != nil {
		pending, reqErr := s.loginApprovals.RequestApproval(ctx, *user.VendorID)
		if reqErr != nil {
			return nil, reqErr
		}
		return &LoginResult{PendingApproval: pending}, nil
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Tokens: tokens}, nil
}

func (s *userService) RedeemApprovedLogin(ctx context.Context, approvalID, requestToken string) (*TokenResponse, error) {
	vendorID, err := s.loginApprovals.Redeem(ctx, approvalID, requestToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByVendorID(ctx, vendorID.String())
	if err != nil {
		return nil, fmt.Errorf("vendor user: %w", ErrNotFound)
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	stored, err := s.repo.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, stored.Token)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, errors.New("user not found")
	}

	// Rotate: the old refresh token is single-use.
	if err := s.repo.DeleteRefreshToken(ctx, stored.Token); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// issueTokens signs a JWT carrying the subject and role, and persists a
// rotating refresh token.
func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Use same fallback strategy as middleware for simplicity here or get from env centrally
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenResponse{Token: tokenString, RefreshToken: refresh.Token}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var responses []UserResponse
	for _, u := range users {
		responses = append(responses, *mapToResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, errors.New("username already exists")
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("email already exists")
		}
		user.Email = req.Email
	}

	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if req.RequiresLoginApproval != nil {
		user.RequiresLoginApproval = *req.RequiresLoginApproval
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	// Let repo handle existence check implicitly or we can check first
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("user not found")
	}
	return s.repo.Delete(ctx, id)
}
