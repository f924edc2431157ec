package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hosterlink/hosterlink-api/internal/auth"
	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// AuthService interface
type AuthService interface {
	Register(ctx context.Context, req dtos.RegisterRequest) (*dtos.AuthResponse, error)
	Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthResponse, error)
}

type authService struct {
	users  repositories.UserRepository
	tokens auth.TokenService
}

func NewAuthService(users repositories.UserRepository, tokens auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil || role == models.RoleAdmin {
		return nil, utils.NewValidation("invalid role", err)
	}
	if !utils.IsPasswordStrong(req.Password) {
		return nil, utils.NewValidation(
			"password must be at least 8 characters and contain upper, lower, digit and symbol characters",
			utils.ErrWeakPassword)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.NewInternal(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, utils.ErrEmailExists) {
			return nil, utils.NewConflict("An account with this email already exists", err)
		}
		return nil, utils.NewInternal(err)
	}

	utils.Logger.WithField("userId", user.ID.Hex()).Info("User registered")
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	// Identical failure for unknown email and wrong password.
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, utils.NewUnauthorized("Invalid email or password", nil)
	}
	return s.issue(user)
}

func (s *authService) issue(user *models.User) (*dtos.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return &dtos.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Redact(),
	}, nil
}
