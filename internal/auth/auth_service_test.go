package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	autherrors "go-hrdocs/internal/auth/errors"
	"go-hrdocs/internal/employee"
	"go-hrdocs/internal/rbac"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	findByEmailFn      func(ctx context.Context, email string) (*employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	findByResetTokenFn func(ctx context.Context, tokenHash string) (*employee.Employee, error)
	updateFn           func(ctx context.Context, e *employee.Employee) error
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context, search string, offset, limit int) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeEmployeeRepo) FindByResetToken(ctx context.Context, tokenHash string) (*employee.Employee, error) {
	return f.findByResetTokenFn(ctx, tokenHash)
}
func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	return f.updateFn(ctx, e)
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) (int64, error) { return 0, nil }

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func testEmployee(t *testing.T, password string) *employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &employee.Employee{
		ID:           uuid.New(),
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		Role:         rbac.RoleEmployee,
		FullName:     "Asha Verma",
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues both tokens", func(t *testing.T) {
		e := testEmployee(t, "correct-horse")
		repo := &fakeEmployeeRepo{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				assert.Equal(t, "asha@example.com", email)
				return e, nil
			},
		}
		svc := NewService(repo, &fakeMailer{})

		resp, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
		assert.Equal(t, e.ID.String(), resp.Employee.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		e := testEmployee(t, "correct-horse")
		repo := &fakeEmployeeRepo{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return e, nil
			},
		}
		svc := NewService(repo, &fakeMailer{})

		_, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "battery-staple"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to same error", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(repo, &fakeMailer{})

		_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Refresh(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	e := testEmployee(t, "correct-horse")

	repo := &fakeEmployeeRepo{
		findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			return e, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			assert.Equal(t, e.ID.String(), id)
			return e, nil
		},
	}
	svc := NewService(repo, &fakeMailer{})

	login, err := svc.Login(context.Background(), LoginRequest{Email: e.Email, Password: "correct-horse"})
	require.NoError(t, err)

	t.Run("refresh token mints a new access token", func(t *testing.T) {
		resp, err := svc.Refresh(context.Background(), login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), login.AccessToken)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not.a.jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_ForgotPassword(t *testing.T) {
	t.Run("stores digest and mails raw token", func(t *testing.T) {
		e := testEmployee(t, "correct-horse")
		var updated *employee.Employee
		repo := &fakeEmployeeRepo{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return e, nil
			},
			updateFn: func(ctx context.Context, got *employee.Employee) error {
				updated = got
				return nil
			},
		}
		mail := &fakeMailer{}
		svc := NewService(repo, mail)

		require.NoError(t, svc.ForgotPassword(context.Background(), e.Email))
		require.NotNil(t, updated.ResetTokenHash)
		require.NotNil(t, updated.ResetTokenExpiresAt)
		require.Len(t, mail.sent, 1)

		// The mailed token must hash to the stored digest and never
		// appear in the database verbatim.
		var raw string
		for _, line := range strings.Split(mail.sent[0].body, "\n") {
			if after, ok := strings.CutPrefix(line, "Reset token: "); ok {
				raw = strings.TrimSpace(after)
			}
		}
		require.NotEmpty(t, raw)
		assert.Equal(t, *updated.ResetTokenHash, hashResetToken(raw))
		assert.NotEqual(t, raw, *updated.ResetTokenHash)
	})

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		mail := &fakeMailer{}
		svc := NewService(repo, mail)

		assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
		assert.Empty(t, mail.sent)
	})
}

func TestService_ResetPassword(t *testing.T) {
	token := "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"

	t.Run("success replaces hash and clears token", func(t *testing.T) {
		digest := hashResetToken(token)
		expires := time.Now().Add(10 * time.Minute)
		e := testEmployee(t, "old-password")
		e.ResetTokenHash = &digest
		e.ResetTokenExpiresAt = &expires

		var updated *employee.Employee
		repo := &fakeEmployeeRepo{
			findByResetTokenFn: func(ctx context.Context, tokenHash string) (*employee.Employee, error) {
				assert.Equal(t, digest, tokenHash)
				return e, nil
			},
			updateFn: func(ctx context.Context, got *employee.Employee) error {
				updated = got
				return nil
			},
		}
		svc := NewService(repo, &fakeMailer{})

		require.NoError(t, svc.ResetPassword(context.Background(), token, "new-password-1"))
		assert.Nil(t, updated.ResetTokenHash)
		assert.Nil(t, updated.ResetTokenExpiresAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-password-1")))
	})

	t.Run("expired token", func(t *testing.T) {
		digest := hashResetToken(token)
		expires := time.Now().Add(-time.Minute)
		e := testEmployee(t, "old-password")
		e.ResetTokenHash = &digest
		e.ResetTokenExpiresAt = &expires

		repo := &fakeEmployeeRepo{
			findByResetTokenFn: func(ctx context.Context, tokenHash string) (*employee.Employee, error) {
				return e, nil
			},
		}
		svc := NewService(repo, &fakeMailer{})

		err := svc.ResetPassword(context.Background(), token, "new-password-1")
		assert.ErrorIs(t, err, autherrors.ErrInvalidResetToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			findByResetTokenFn: func(ctx context.Context, tokenHash string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(repo, &fakeMailer{})

		err := svc.ResetPassword(context.Background(), token, "new-password-1")
		assert.ErrorIs(t, err, autherrors.ErrInvalidResetToken)
	})
}
