package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn  func(tx *gorm.DB) Repository
	createFn  func(ctx context.Context, entry *AuditEntry) error
	findAllFn func(ctx context.Context, filter Filter, offset, limit int) ([]AuditEntry, int64, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, entry *AuditEntry) error {
	return f.createFn(ctx, entry)
}
func (f *fakeRepo) FindAll(ctx context.Context, filter Filter, offset, limit int) ([]AuditEntry, int64, error) {
	return f.findAllFn(ctx, filter, offset, limit)
}

func TestService_Record(t *testing.T) {
	var saved *AuditEntry
	repo := &fakeRepo{
		createFn: func(ctx context.Context, entry *AuditEntry) error {
			saved = entry
			return nil
		},
	}

	svc := NewService(repo)
	actorID := uuid.New()
	svc.Record(context.Background(), Entry{
		Actor:      Actor{ID: actorID, Email: "hr@corp.test", Role: "HR", IP: "10.0.0.1"},
		Action:     ActionDocumentApproved,
		TargetType: TargetDocument,
		TargetID:   "doc-1",
		Details:    map[string]any{"remarks": "looks fine"},
	})

	assert.NotNil(t, saved)
	assert.Equal(t, actorID, saved.ActorID)
	assert.Equal(t, ActionDocumentApproved, saved.Action)
	assert.Equal(t, TargetDocument, saved.TargetType)
	assert.JSONEq(t, `{"remarks":"looks fine"}`, string(saved.Details))
}

func TestService_Record_FailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, entry *AuditEntry) error {
			return errors.New("db down")
		},
	}

	svc := NewService(repo)
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), Entry{Action: ActionDocumentRejected})
	})
}

func TestService_List_PaginationDefaults(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, filter Filter, offset, limit int) ([]AuditEntry, int64, error) {
			gotOffset, gotLimit = offset, limit
			return []AuditEntry{{ID: uuid.New(), Action: ActionEmployeeCreated}}, 1, nil
		},
	}

	svc := NewService(repo)
	entries, total, err := svc.List(context.Background(), Filter{}, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, gotOffset)
	assert.Equal(t, 20, gotLimit)
}
