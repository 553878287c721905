package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/employee"
	employeeerrors "go-hrdocs/internal/employee/errors"
	"go-hrdocs/internal/mailer"
	otperrors "go-hrdocs/internal/otp/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	codeLength  = 6
	codeTTL     = 10 * time.Minute
	maxAttempts = 5
)

// GrantVerifier is what the document upload path depends on; it never
// needs code issuance.
type GrantVerifier interface {
	VerifyGrant(token string) (string, error)
}

//go:generate mockgen -source=otp_service.go -destination=mock/otp_service_mock.go -package=mock
type Service interface {
	GrantVerifier
	Issue(ctx context.Context, actor audit.Actor, employeeEmail string) error
	Verify(ctx context.Context, employeeID, code string) (*VerifyResponse, error)
}

type service struct {
	employeeRepo employee.Repository
	mail         mailer.Mailer
	recorder     audit.Recorder
	now          func() time.Time
	logger       *zap.Logger
}

func NewService(employeeRepo employee.Repository, mail mailer.Mailer, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("otp.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("otp.service")
	}
	return &service{
		employeeRepo: employeeRepo,
		mail:         mail,
		recorder:     recorder,
		now:          time.Now,
		logger:       l,
	}
}

// Issue generates a fresh code for the employee with that email,
// replacing any code already outstanding and resetting the attempt
// counter.
func (s *service) Issue(ctx context.Context, actor audit.Actor, employeeEmail string) error {
	e, err := s.employeeRepo.FindByEmail(ctx, employeeEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(codeTTL)

	e.OTPCode = &code
	e.OTPExpiresAt = &expiresAt
	e.OTPAttempts = 0
	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Your document upload verification code is %s.\n\nIt expires in %d minutes.",
		code, int(codeTTL.Minutes()),
	)
	if err := s.mail.Send(ctx, e.Email, "Your verification code", body); err != nil {
		s.logger.Error("otp email send failed", zap.String("employee_id", e.ID.String()), zap.Error(err))
		return err
	}

	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionOTPIssued,
		TargetType: audit.TargetEmployee,
		TargetID:   e.ID.String(),
		Details:    map[string]any{"expires_at": expiresAt.UTC().Format(time.RFC3339)},
	})
	return nil
}

// Verify compares the submitted code and, on success, clears the OTP
// state and returns a short-lived upload grant. Each mismatch burns an
// attempt; the code is invalidated after maxAttempts failures.
func (s *service) Verify(ctx context.Context, employeeID, code string) (*VerifyResponse, error) {
	e, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	if e.OTPCode == nil || e.OTPExpiresAt == nil {
		return nil, otperrors.ErrOTPNotIssued
	}
	if e.OTPAttempts >= maxAttempts {
		return nil, otperrors.ErrOTPAttemptsExceeded
	}
	if s.now().After(*e.OTPExpiresAt) {
		s.clearOTP(ctx, e)
		return nil, otperrors.ErrOTPExpired
	}

	if strings.TrimSpace(code) != *e.OTPCode {
		e.OTPAttempts++
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			s.logger.Error("otp attempt counter update failed", zap.String("employee_id", employeeID), zap.Error(err))
		}
		if e.OTPAttempts >= maxAttempts {
			return nil, otperrors.ErrOTPAttemptsExceeded
		}
		return nil, otperrors.ErrOTPMismatch
	}

	s.clearOTP(ctx, e)

	grant, err := signUploadGrant(employeeID)
	if err != nil {
		return nil, err
	}
	return &VerifyResponse{
		UploadGrant: grant,
		ExpiresIn:   int(uploadGrantTTL.Seconds()),
	}, nil
}

func (s *service) VerifyGrant(token string) (string, error) {
	return VerifyUploadGrant(token)
}

func (s *service) clearOTP(ctx context.Context, e *employee.Employee) {
	e.OTPCode = nil
	e.OTPExpiresAt = nil
	e.OTPAttempts = 0
	if err := s.employeeRepo.Update(ctx, e); err != nil {
		s.logger.Error("otp state clear failed", zap.String("employee_id", e.ID.String()), zap.Error(err))
	}
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeLength, n), nil
}
