package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"taxportal/internal/model"
	"taxportal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	NIK      string `json:"nik" binding:"required,len=16"`
	Password string `json:"password" binding:"required,min=6"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	NIK      string `json:"nik" binding:"required,len=16"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin wajib_pajak"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=admin wajib_pajak"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	NIK       string    `json:"nik"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest, actorID string) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest, actorID string) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string, actorID string) error
}

type userService struct {
	repo   repository.UserRepository
	audit  repository.AuditRepository
	secret []byte
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, audit repository.AuditRepository, secret []byte) UserService {
	return &userService{repo: repo, audit: audit, secret: secret}
}

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

var nikRegex = regexp.MustCompile(`^[0-9]{16}$`)

// Helper: parse model to standard json API response
func mapToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		NIK:       user.NIK,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *userService) createUser(ctx context.Context, username, email, phone, nik, password, role string) (*UserResponse, error) {
	if !nikRegex.MatchString(nik) {
		return nil, errors.New("invalid NIK: must be 16 digits")
	}

	// Double check uniqueness via repo directly; unique indexes are the
	// final guard but these produce friendlier errors
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, errors.New("username already exists")
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, errors.New("email already exists")
	}
	if _, err := s.repo.GetByNIK(ctx, nik); err == nil {
		return nil, errors.New("NIK already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Phone:    phone,
		NIK:      nik,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapToUserResponse(user), nil
}

// Register creates a self-service taxpayer account. The role is always
// wajib_pajak; admins are created by other admins.
func (s *userService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	res, err := s.createUser(ctx, req.Username, req.Email, req.Phone, req.NIK, req.Password, model.RoleTaxpayer)
	if err != nil {
		return nil, err
	}
	s.writeAuditLog(ctx, res.ID.String(), model.ActionRegisterUser, res.ID.String(), res.Username)
	return res, nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest, actorID string) (*UserResponse, error) {
	res, err := s.createUser(ctx, req.Username, req.Email, req.Phone, req.NIK, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	s.writeAuditLog(ctx, actorID, model.ActionCreateUser, res.ID.String(), res.Username)
	return res, nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a stored refresh token for a fresh token pair. The old
// refresh token is rotated out.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	rt, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, rt.UserID.String())
	if err != nil {
		return nil, errors.New("user not found")
	}

	_ = s.repo.DeleteRefreshToken(ctx, refreshToken)

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  now.Add(accessTokenTTL).Unix(),
		"iat":  now.Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	// Opportunistic cleanup of stale tokens
	_ = s.repo.DeleteExpiredRefreshTokens(ctx, now)

	return &TokenResponse{Token: tokenString, RefreshToken: refresh.Token}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToUserResponse(user), nil
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

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *mapToUserResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest, actorID string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Role != "" {
		user.Role = req.Role
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

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.writeAuditLog(ctx, actorID, model.ActionUpdateUser, user.ID.String(), user.Username)

	return mapToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string, actorID string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("user not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.writeAuditLog(ctx, actorID, model.ActionDeleteUser, id, user.Username)
	return nil
}

// Best-effort audit write, never fails the operation
func (s *userService) writeAuditLog(ctx context.Context, actorID, action, entityID, entityName string) {
	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    "{}",
	}
	if actorID != "" {
		if parsed, err := uuid.Parse(actorID); err == nil {
			entry.UserID = &parsed
		}
	}
	_ = s.audit.Log(ctx, &entry)
}
