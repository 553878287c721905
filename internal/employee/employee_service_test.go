package employee

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-hrdocs/internal/audit"
	employeeerrors "go-hrdocs/internal/employee/errors"
	"go-hrdocs/internal/rbac"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, e *Employee) error
	findAllFn     func(ctx context.Context, search string, offset, limit int) ([]Employee, int64, error)
	findByIDFn    func(ctx context.Context, id string) (*Employee, error)
	findByEmailFn func(ctx context.Context, email string) (*Employee, error)
	findOptionsFn func(ctx context.Context) ([]Employee, error)
	updateFn      func(ctx context.Context, e *Employee) error
	deleteFn      func(ctx context.Context, id string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository                 { return f }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context, search string, offset, limit int) ([]Employee, int64, error) {
	return f.findAllFn(ctx, search, offset, limit)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) FindByResetToken(ctx context.Context, tokenHash string) (*Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) FindOptions(ctx context.Context) ([]Employee, error) {
	return f.findOptionsFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

func TestService_Create_GeneratesCodeAndHashesPassword(t *testing.T) {
	var saved *Employee
	repo := &fakeRepo{
		createFn: func(ctx context.Context, e *Employee) error {
			saved = e
			return nil
		},
	}
	recorder := &fakeRecorder{}
	svc := NewService(repo, &fakeCounter{next: 41}, recorder, nil)

	resp, err := svc.Create(context.Background(), audit.Actor{ID: uuid.New(), Role: rbac.RoleHR}, CreateEmployeeRequest{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000042", resp.EmployeeCode)
	assert.Equal(t, rbac.RoleEmployee, resp.Role)
	assert.NotEqual(t, "s3cret-pass", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-pass")))

	if assert.Len(t, recorder.entries, 1) {
		assert.Equal(t, audit.ActionEmployeeCreated, recorder.entries[0].Action)
		assert.Equal(t, saved.ID.String(), recorder.entries[0].TargetID)
	}
}

func TestService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCounter{}, &fakeRecorder{}, nil)

	_, err := svc.Create(context.Background(), audit.Actor{}, CreateEmployeeRequest{
		FullName: "X",
		Email:    "x@example.com",
		Password: "password1",
		Role:     "OVERLORD",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
}

func TestService_GetByID(t *testing.T) {
	id := uuid.New()

	t.Run("invalid uuid", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, &fakeCounter{}, &fakeRecorder{}, nil)
		_, err := svc.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, gotID string) (*Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := NewService(repo, &fakeCounter{}, &fakeRecorder{}, nil)
		_, err := svc.GetByID(context.Background(), id.String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("found", func(t *testing.T) {
		joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, gotID string) (*Employee, error) {
				return &Employee{ID: id, FullName: "Asha", Email: "asha@example.com", JoinDate: &joined}, nil
			},
		}
		svc := NewService(repo, &fakeCounter{}, &fakeRecorder{}, nil)
		resp, err := svc.GetByID(context.Background(), id.String())
		assert.NoError(t, err)
		assert.Equal(t, "2024-03-01", resp.JoinDate)
	})
}

func TestService_GetOptions_CacheHitSkipsRepo(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cached, _ := json.Marshal([]EmployeeOption{{ID: uuid.NewString(), FullName: "Cached", Email: "c@example.com"}})
	mock.ExpectGet(optionsCacheKey).SetVal(string(cached))

	repo := &fakeRepo{
		findOptionsFn: func(ctx context.Context) ([]Employee, error) {
			t.Fatal("repository must not be queried on cache hit")
			return nil, nil
		},
	}
	svc := NewService(repo, &fakeCounter{}, &fakeRecorder{}, client)

	options, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, options, 1)
	assert.Equal(t, "Cached", options[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetOptions_MissLoadsAndCaches(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(optionsCacheKey).RedisNil()
	mock.Regexp().ExpectSet(optionsCacheKey, `.+`, optionsCacheTTL).SetVal("OK")

	repo := &fakeRepo{
		findOptionsFn: func(ctx context.Context) ([]Employee, error) {
			return []Employee{{ID: uuid.New(), FullName: "Loaded", Email: "l@example.com"}}, nil
		},
	}
	svc := NewService(repo, &fakeCounter{}, &fakeRecorder{}, client)

	options, err := svc.GetOptions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, options, 1)
	assert.Equal(t, "Loaded", options[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("super admin is protected", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, gotID string) (*Employee, error) {
				return &Employee{ID: id, Role: rbac.RoleSuperAdmin}, nil
			},
		}
		svc := NewService(repo, &fakeCounter{}, &fakeRecorder{}, nil)
		err := svc.Delete(context.Background(), audit.Actor{}, id.String())
		assert.ErrorIs(t, err, employeeerrors.ErrCannotDeleteSuperAdmin)
	})

	t.Run("success records audit", func(t *testing.T) {
		recorder := &fakeRecorder{}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, gotID string) (*Employee, error) {
				return &Employee{ID: id, Role: rbac.RoleEmployee, Email: "gone@example.com"}, nil
			},
			deleteFn: func(ctx context.Context, gotID string) (int64, error) {
				return 1, nil
			},
		}
		svc := NewService(repo, &fakeCounter{}, recorder, nil)
		assert.NoError(t, svc.Delete(context.Background(), audit.Actor{ID: uuid.New()}, id.String()))
		if assert.Len(t, recorder.entries, 1) {
			assert.Equal(t, audit.ActionEmployeeDeleted, recorder.entries[0].Action)
		}
	})
}

func TestService_Update_MergesOnlyProvidedFields(t *testing.T) {
	id := uuid.New()
	var saved *Employee
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, gotID string) (*Employee, error) {
			return &Employee{ID: id, FullName: "Before", Phone: "111", Department: "Ops"}, nil
		},
		updateFn: func(ctx context.Context, e *Employee) error {
			saved = e
			return nil
		},
	}
	svc := NewService(repo, &fakeCounter{}, &fakeRecorder{}, nil)

	resp, err := svc.Update(context.Background(), audit.Actor{}, id.String(), UpdateEmployeeRequest{
		Phone: "222",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Before", saved.FullName)
	assert.Equal(t, "222", saved.Phone)
	assert.Equal(t, "Ops", saved.Department)
	assert.Equal(t, "222", resp.Phone)
}
