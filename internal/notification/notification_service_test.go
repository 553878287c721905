package notification

import (
	"context"
	"errors"
	"testing"

	notificationerrors "go-hrdocs/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn      func(tx *gorm.DB) Repository
	createFn      func(ctx context.Context, n *Notification) error
	findAllFn     func(ctx context.Context, employeeID string, offset, limit int) ([]Notification, int64, error)
	markReadFn    func(ctx context.Context, employeeID, id string) (int64, error)
	markAllReadFn func(ctx context.Context, employeeID string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, n *Notification) error {
	return f.createFn(ctx, n)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string, offset, limit int) ([]Notification, int64, error) {
	return f.findAllFn(ctx, employeeID, offset, limit)
}
func (f *fakeRepo) MarkRead(ctx context.Context, employeeID, id string) (int64, error) {
	return f.markReadFn(ctx, employeeID, id)
}
func (f *fakeRepo) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	return f.markAllReadFn(ctx, employeeID)
}

func TestService_Notify_AppendsUnread(t *testing.T) {
	var saved *Notification
	repo := &fakeRepo{
		createFn: func(ctx context.Context, n *Notification) error {
			saved = n
			return nil
		},
	}

	svc := NewService(repo)
	employeeID := uuid.New()
	svc.Notify(context.Background(), Message{
		EmployeeID: employeeID,
		Type:       TypeDocumentReviewed,
		Title:      "Document approved",
		Body:       "Your PAN Card was approved",
		Meta:       map[string]any{"document_id": "doc-1"},
	})

	assert.NotNil(t, saved)
	assert.Equal(t, employeeID, saved.EmployeeID)
	assert.False(t, saved.Read)
	assert.JSONEq(t, `{"document_id":"doc-1"}`, string(saved.Meta))
}

func TestService_Notify_FailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, n *Notification) error {
			return errors.New("insert failed")
		},
	}

	svc := NewService(repo)
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), Message{EmployeeID: uuid.New(), Type: TypeDocumentVerified})
	})
}

func TestService_MarkRead(t *testing.T) {
	employeeID := uuid.New().String()
	notifID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{
			markReadFn: func(ctx context.Context, gotEmployee, gotID string) (int64, error) {
				assert.Equal(t, employeeID, gotEmployee)
				assert.Equal(t, notifID, gotID)
				return 1, nil
			},
		}
		svc := NewService(repo)
		assert.NoError(t, svc.MarkRead(context.Background(), employeeID, notifID))
	})

	t.Run("not owned or missing", func(t *testing.T) {
		repo := &fakeRepo{
			markReadFn: func(ctx context.Context, gotEmployee, gotID string) (int64, error) {
				return 0, nil
			},
		}
		svc := NewService(repo)
		err := svc.MarkRead(context.Background(), employeeID, notifID)
		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		err := svc.MarkRead(context.Background(), employeeID, "not-a-uuid")
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)
	})
}

func TestService_List_SortsAndPaginates(t *testing.T) {
	employeeID := uuid.New().String()
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, gotEmployee string, offset, limit int) ([]Notification, int64, error) {
			assert.Equal(t, employeeID, gotEmployee)
			assert.Equal(t, 20, offset)
			assert.Equal(t, 20, limit)
			return []Notification{{ID: uuid.New(), Type: TypeDocumentUploaded}}, 21, nil
		},
	}

	svc := NewService(repo)
	items, total, err := svc.List(context.Background(), employeeID, 2, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(21), total)
	assert.Len(t, items, 1)
}
