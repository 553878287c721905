package profileupdate

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/employee"
	"go-hrdocs/internal/messaging/kafka"
	"go-hrdocs/internal/notification"
	profileupdateerrors "go-hrdocs/internal/profileupdate/errors"
	"go-hrdocs/internal/rbac"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byEmployee map[string]*UpdateRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmployee: map[string]*UpdateRequest{}}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) Upsert(ctx context.Context, r *UpdateRequest) error {
	key := r.EmployeeID.String()
	if existing, ok := f.byEmployee[key]; ok {
		existing.Changes = r.Changes
		existing.Status = r.Status
		existing.Remarks = r.Remarks
		existing.DecidedBy = r.DecidedBy
		existing.DecidedAt = r.DecidedAt
		return nil
	}
	f.byEmployee[key] = r
	return nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*UpdateRequest, error) {
	for _, r := range f.byEmployee {
		if r.ID.String() == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) (*UpdateRequest, error) {
	if r, ok := f.byEmployee[employeeID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) FindAll(ctx context.Context, status string, offset, limit int) ([]UpdateRequest, int64, error) {
	var out []UpdateRequest
	for _, r := range f.byEmployee {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}
func (f *fakeRepo) Update(ctx context.Context, r *UpdateRequest) error {
	f.byEmployee[r.EmployeeID.String()] = r
	return nil
}

type fakeEmployeeRepo struct {
	byID    map[string]*employee.Employee
	updated []*employee.Employee
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context, search string, offset, limit int) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByResetToken(ctx context.Context, tokenHash string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	f.updated = append(f.updated, e)
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) (int64, error) { return 0, nil }

type outboxStub struct {
	events []kafka.OutboxEvent
}

func (f *outboxStub) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *outboxStub) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *outboxStub) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.events, nil
}
func (f *outboxStub) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *outboxStub) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

type fakeNotifier struct {
	messages []notification.Message
}

func (f *fakeNotifier) Notify(ctx context.Context, msg notification.Message) {
	f.messages = append(f.messages, msg)
}

type harness struct {
	svc      *service
	repo     *fakeRepo
	empRepo  *fakeEmployeeRepo
	outbox   *outboxStub
	recorder *fakeRecorder
	notifier *fakeNotifier
	owner    *employee.Employee
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	owner := &employee.Employee{
		ID:         uuid.New(),
		Email:      "asha@example.com",
		FullName:   "Asha Verma",
		Phone:      "111",
		Department: "Engineering",
	}

	h := &harness{
		repo:     newFakeRepo(),
		empRepo:  &fakeEmployeeRepo{byID: map[string]*employee.Employee{owner.ID.String(): owner}},
		outbox:   &outboxStub{},
		recorder: &fakeRecorder{},
		notifier: &fakeNotifier{},
		owner:    owner,
	}

	svc := NewService(nil, h.repo, h.empRepo, h.outbox, h.recorder, h.notifier).(*service)
	svc.runTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return fn(nil)
	}
	h.svc = svc
	return h
}

func (h *harness) ownerActor() audit.Actor {
	return audit.Actor{ID: h.owner.ID, Email: h.owner.Email, Role: rbac.RoleEmployee}
}

func TestService_Submit(t *testing.T) {
	t.Run("keeps only allow-listed fields", func(t *testing.T) {
		h := newHarness(t)

		resp, err := h.svc.Submit(context.Background(), h.ownerActor(), SubmitRequest{
			Phone:   "222",
			Address: "12 New Lane",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, map[string]string{"phone": "222", "address": "12 New Lane"}, resp.Changes)
		assert.Len(t, h.outbox.events, 1)
	})

	t.Run("all-blank request is refused", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.svc.Submit(context.Background(), h.ownerActor(), SubmitRequest{Phone: "   "})
		assert.ErrorIs(t, err, profileupdateerrors.ErrNoValidFields)
	})

	t.Run("second submit replaces the first", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.svc.Submit(context.Background(), h.ownerActor(), SubmitRequest{Phone: "222"})
		require.NoError(t, err)
		resp, err := h.svc.Submit(context.Background(), h.ownerActor(), SubmitRequest{Address: "12 New Lane"})
		require.NoError(t, err)

		assert.Len(t, h.repo.byEmployee, 1)
		assert.Equal(t, map[string]string{"address": "12 New Lane"}, resp.Changes)
	})
}

func TestService_Adjudicate(t *testing.T) {
	submit := func(t *testing.T, h *harness) *RequestResponse {
		t.Helper()
		resp, err := h.svc.Submit(context.Background(), h.ownerActor(), SubmitRequest{
			Phone:    "222",
			FullName: "Asha V",
		})
		require.NoError(t, err)
		return resp
	}
	hrActor := audit.Actor{ID: uuid.New(), Email: "hr@example.com", Role: rbac.RoleHR}

	t.Run("approval merges into the profile", func(t *testing.T) {
		h := newHarness(t)
		req := submit(t, h)

		resp, err := h.svc.Adjudicate(context.Background(), hrActor, req.ID, DecisionRequest{Decision: "approved"})
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)

		require.Len(t, h.empRepo.updated, 1)
		assert.Equal(t, "222", h.owner.Phone)
		assert.Equal(t, "Asha V", h.owner.FullName)
		// untouched fields survive the merge
		assert.Equal(t, "Engineering", h.owner.Department)

		require.Len(t, h.notifier.messages, 1)
		assert.Equal(t, notification.TypeProfileUpdateDecided, h.notifier.messages[0].Type)
	})

	t.Run("rejection leaves the profile untouched", func(t *testing.T) {
		h := newHarness(t)
		req := submit(t, h)

		resp, err := h.svc.Adjudicate(context.Background(), hrActor, req.ID, DecisionRequest{
			Decision: "REJECTED", Remarks: "phone format is wrong",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)

		assert.Empty(t, h.empRepo.updated)
		assert.Equal(t, "111", h.owner.Phone)
		assert.Equal(t, "Asha Verma", h.owner.FullName)
	})

	t.Run("double decision conflicts", func(t *testing.T) {
		h := newHarness(t)
		req := submit(t, h)

		_, err := h.svc.Adjudicate(context.Background(), hrActor, req.ID, DecisionRequest{Decision: "APPROVED"})
		require.NoError(t, err)

		_, err = h.svc.Adjudicate(context.Background(), hrActor, req.ID, DecisionRequest{Decision: "REJECTED"})
		assert.ErrorIs(t, err, profileupdateerrors.ErrAlreadyDecided)
	})

	t.Run("unknown decision", func(t *testing.T) {
		h := newHarness(t)
		req := submit(t, h)

		_, err := h.svc.Adjudicate(context.Background(), hrActor, req.ID, DecisionRequest{Decision: "MAYBE"})
		assert.ErrorIs(t, err, profileupdateerrors.ErrInvalidDecision)
	})

	t.Run("missing request", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.svc.Adjudicate(context.Background(), hrActor, uuid.NewString(), DecisionRequest{Decision: "APPROVED"})
		assert.ErrorIs(t, err, profileupdateerrors.ErrRequestNotFound)
	})
}

func TestMapToResponse_DecodesChanges(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"phone": "222"})
	resp := mapToResponse(UpdateRequest{ID: uuid.New(), EmployeeID: uuid.New(), Changes: payload, Status: StatusPending})
	assert.Equal(t, "222", resp.Changes["phone"])
}
