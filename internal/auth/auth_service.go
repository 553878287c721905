package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	autherrors "go-hrdocs/internal/auth/errors"
	"go-hrdocs/internal/employee"
	"go-hrdocs/internal/mailer"
	"go-hrdocs/internal/rbac"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultResetTokenTTL = 30 * time.Minute

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	employeeRepo  employee.Repository
	mail          mailer.Mailer
	resetTokenTTL time.Duration
	logger        *zap.Logger
}

func NewService(employeeRepo employee.Repository, mail mailer.Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		employeeRepo:  employeeRepo,
		mail:          mail,
		resetTokenTTL: resetTokenTTLFromEnv(),
		logger:        l,
	}
}

func resetTokenTTLFromEnv() time.Duration {
	if raw := os.Getenv("RESET_TOKEN_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultResetTokenTTL
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	e, err := s.employeeRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.Password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	role := rbac.NormalizeRole(e.Role)
	access, err := signToken(tokenTypeAccess, e.ID.String(), e.Email, role, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(tokenTypeRefresh, e.ID.String(), e.Email, role, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	resp := employee.MapToResponse(*e)
	s.logger.Info("login", zap.String("employee_id", e.ID.String()), zap.String("role", role))
	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Employee:     &resp,
	}, nil
}

// Refresh re-reads the employee so role changes and deletions take
// effect at most one access-token lifetime after they happen.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := parseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	employeeID, _ := claims["employee_id"].(string)
	e, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return nil, err
	}

	access, err := signToken(tokenTypeAccess, e.ID.String(), e.Email, rbac.NormalizeRole(e.Role), accessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{AccessToken: access}, nil
}

// ForgotPassword always reports success to the caller; whether the
// email exists is never revealed.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	e, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("password reset for unknown email", zap.String("email", email))
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	digest := hashResetToken(token)
	expiresAt := time.Now().Add(s.resetTokenTTL)

	e.ResetTokenHash = &digest
	e.ResetTokenExpiresAt = &expiresAt
	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset token: %s\n\nThe token expires in %d minutes. If you did not request this, ignore this email.",
		token, int(s.resetTokenTTL.Minutes()),
	)
	if err := s.mail.Send(ctx, e.Email, "Password reset request", body); err != nil {
		s.logger.Error("reset email send failed", zap.String("employee_id", e.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	e, err := s.employeeRepo.FindByResetToken(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrInvalidResetToken
		}
		return err
	}
	if e.ResetTokenExpiresAt == nil || time.Now().After(*e.ResetTokenExpiresAt) {
		return autherrors.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	e.PasswordHash = string(hash)
	e.ResetTokenHash = nil
	e.ResetTokenExpiresAt = nil
	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("employee_id", e.ID.String()))
	return nil
}

// hashResetToken stores only the sha256 digest so a database leak does
// not expose usable reset tokens.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
