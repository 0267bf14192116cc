package businessflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/services"
	"github.com/amirphl/marketing-manager/models"
	"github.com/amirphl/marketing-manager/repository"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles authentication and account operations
type AuthFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.TokenPairResponse, error)
	Me(ctx context.Context, principal *Principal) (*models.User, error)
	ChangePassword(ctx context.Context, principal *Principal, req *dto.ChangePasswordRequest, metadata *ClientMetadata) error
	Logout(ctx context.Context, principal *Principal, metadata *ClientMetadata) error
	EnsureAdmin(ctx context.Context, name, email, password string) (bool, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
	revocations  services.RevocationStore
	loginGuard   services.LoginGuard
	withTx       TxRunner
	passwordCost int
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	revocations services.RevocationStore,
	loginGuard services.LoginGuard,
	withTx TxRunner,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		revocations:  revocations,
		loginGuard:   loginGuard,
		withTx:       withTx,
		passwordCost: bcrypt.DefaultCost,
	}
}

// Login authenticates a user with email and password
func (af *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	locked, err := af.loginGuard.Locked(ctx, email)
	if err != nil {
		log.Printf("login guard unavailable for %s: %v", email, err)
	}
	if locked {
		errMsg := fmt.Sprintf("Login locked for %s", email)
		_ = createAuditLog(ctx, af.auditRepo, nil, models.AuditActionLoginLocked, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("LOGIN_LOCKED", "Too many failed login attempts, please try again later", ErrLoginLocked)
	}

	user, err := af.userRepo.ByEmail(ctx, email)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		if _, gerr := af.loginGuard.RecordFailure(ctx, email); gerr != nil {
			log.Printf("failed to record login failure for %s: %v", email, gerr)
		}
		errMsg := fmt.Sprintf("Login failed for %s", email)
		var userID *uuid.UUID
		if user != nil {
			userID = &user.ID
		}
		_ = createAuditLog(ctx, af.auditRepo, userID, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid credentials", ErrInvalidCredentials)
	}

	if err := af.loginGuard.Reset(ctx, email); err != nil {
		log.Printf("failed to reset login failures for %s: %v", email, err)
	}

	resp, err := af.issue(user)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	msg := fmt.Sprintf("User logged in successfully: %s", user.ID)
	_ = createAuditLog(ctx, af.auditRepo, &user.ID, models.AuditActionLoginSuccess, msg, true, nil, metadata)

	return resp, nil
}

// Register creates an account and signs it in
func (af *AuthFlowImpl) Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.AuthResponse, error) {
	role := models.RoleUser
	if req.Role != nil && *req.Role != "" {
		role = models.Role(*req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), af.passwordCost)
	if err != nil {
		return nil, NewBusinessError("REGISTRATION_FAILED", "Registration failed", fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Name:         req.Name,
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         role,
	}

	err = af.withTx(ctx, func(txCtx context.Context) error {
		existing, err := af.userRepo.ByEmail(txCtx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}
		if err := af.userRepo.Save(txCtx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if IsEmailAlreadyExists(err) {
			return nil, NewBusinessError("USER_EXISTS", "User already exists", err)
		}
		return nil, NewBusinessError("REGISTRATION_FAILED", "Registration failed", err)
	}

	resp, err := af.issue(user)
	if err != nil {
		return nil, NewBusinessError("REGISTRATION_FAILED", "Registration failed", err)
	}

	msg := fmt.Sprintf("User registered: %s (%s)", user.ID, user.Role)
	_ = createAuditLog(ctx, af.auditRepo, &user.ID, models.AuditActionRegistered, msg, true, nil, metadata)

	return resp, nil
}

// Refresh exchanges a refresh token for a new token pair and revokes the old one
func (af *AuthFlowImpl) Refresh(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.TokenPairResponse, error) {
	claims, err := af.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("INVALID_TOKEN", "Invalid or expired token", errors.Join(ErrInvalidToken, err))
	}

	revoked, err := af.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", err)
	}
	if revoked {
		return nil, NewBusinessError("INVALID_TOKEN", "Invalid or expired token", ErrInvalidToken)
	}

	user, err := af.userRepo.ByID(ctx, claims.UserID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", err)
	}
	if user == nil {
		return nil, NewBusinessError("INVALID_TOKEN", "Invalid or expired token", ErrInvalidToken)
	}

	if err := af.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", err)
	}

	accessToken, refreshToken, err := af.tokenService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", err)
	}

	_ = createAuditLog(ctx, af.auditRepo, &user.ID, models.AuditActionTokenRefreshed, "Token refreshed", true, nil, metadata)

	return &dto.TokenPairResponse{Token: accessToken, RefreshToken: refreshToken}, nil
}

// Me returns the caller's account
func (af *AuthFlowImpl) Me(ctx context.Context, principal *Principal) (*models.User, error) {
	if principal == nil {
		return nil, NewBusinessError("UNAUTHENTICATED", "Not authorized", ErrUnauthenticated)
	}

	user, err := af.userRepo.ByID(ctx, principal.ID)
	if err != nil {
		return nil, NewBusinessError("GET_USER_FAILED", "Failed to load user", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User not found", ErrUserNotFound)
	}
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one
func (af *AuthFlowImpl) ChangePassword(ctx context.Context, principal *Principal, req *dto.ChangePasswordRequest, metadata *ClientMetadata) error {
	user, err := af.Me(ctx, principal)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		errMsg := "Current password mismatch"
		_ = createAuditLog(ctx, af.auditRepo, &user.ID, models.AuditActionPasswordChanged, errMsg, false, &errMsg, metadata)
		return NewBusinessError("INCORRECT_PASSWORD", "Current password is incorrect", ErrIncorrectPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), af.passwordCost)
	if err != nil {
		return NewBusinessError("CHANGE_PASSWORD_FAILED", "Password change failed", fmt.Errorf("failed to hash password: %w", err))
	}

	if err := af.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return NewBusinessError("CHANGE_PASSWORD_FAILED", "Password change failed", err)
	}

	_ = createAuditLog(ctx, af.auditRepo, &user.ID, models.AuditActionPasswordChanged, "Password changed", true, nil, metadata)
	return nil
}

// Logout revokes the access token the caller presented
func (af *AuthFlowImpl) Logout(ctx context.Context, principal *Principal, metadata *ClientMetadata) error {
	if principal == nil {
		return NewBusinessError("UNAUTHENTICATED", "Not authorized", ErrUnauthenticated)
	}

	if principal.Token != nil && principal.Token.ID != "" {
		expiresAt := time.Unix(principal.Token.ExpiresAt, 0)
		if err := af.revocations.Revoke(ctx, principal.Token.ID, expiresAt); err != nil {
			return NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
		}
	}

	_ = createAuditLog(ctx, af.auditRepo, &principal.ID, models.AuditActionLogout, "User logged out", true, nil, metadata)
	return nil
}

// EnsureAdmin creates an admin account for email unless one already exists
func (af *AuthFlowImpl) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = utils.NormalizeEmail(email)
	existing, err := af.userRepo.ByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), af.passwordCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.User{Name: name, Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := af.userRepo.Save(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func (af *AuthFlowImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, err := af.tokenService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         ToAuthUser(user),
	}, nil
}

// ToAuthUser converts a user model to its public auth view
func ToAuthUser(user *models.User) dto.AuthUser {
	return dto.AuthUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
	}
}
