package profileupdate

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"go-hrdocs/internal/audit"
	"go-hrdocs/internal/employee"
	"go-hrdocs/internal/events"
	"go-hrdocs/internal/messaging/kafka"
	"go-hrdocs/internal/notification"
	profileupdateerrors "go-hrdocs/internal/profileupdate/errors"
	"go-hrdocs/internal/shared/connection"
	"go-hrdocs/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// allowedFields is the closed set of profile attributes an employee
// may ask to change. Identity and payroll-relevant columns (email,
// role, employee code, join date) are deliberately absent.
var allowedFields = map[string]struct{}{
	"full_name":  {},
	"phone":      {},
	"department": {},
	"position":   {},
	"address":    {},
}

//go:generate mockgen -source=profileupdate_service.go -destination=mock/profileupdate_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor audit.Actor, req SubmitRequest) (*RequestResponse, error)
	GetMine(ctx context.Context, employeeID string) (*RequestResponse, error)
	List(ctx context.Context, status string, page, pageSize int) ([]RequestResponse, int64, error)
	Adjudicate(ctx context.Context, actor audit.Actor, requestID string, req DecisionRequest) (*RequestResponse, error)
}

type txFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	recorder     audit.Recorder
	notifier     notification.Notifier
	runTx        txFunc
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outbox kafka.OutboxRepository,
	recorder audit.Recorder,
	notifier notification.Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("profileupdate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profileupdate.service")
	}
	return &service{
		repo:         repo,
		employeeRepo: employeeRepo,
		outbox:       outbox,
		recorder:     recorder,
		notifier:     notifier,
		runTx: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
		logger: l,
	}
}

// Submit files the employee's requested changes, replacing any request
// already on record for them regardless of its state.
func (s *service) Submit(ctx context.Context, actor audit.Actor, req SubmitRequest) (*RequestResponse, error) {
	changes := filterChanges(req)
	if len(changes) == 0 {
		return nil, profileupdateerrors.ErrNoValidFields
	}

	payload, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}

	row := &UpdateRequest{
		ID:         uuid.New(),
		EmployeeID: actor.ID,
		Changes:    payload,
		Status:     StatusPending,
	}

	event := events.ProfileUpdateEvent{
		EventType:     events.EventProfileUpdateRequested,
		RequestID:     contextutil.GetRequestID(ctx),
		EmployeeID:    actor.ID.String(),
		EmployeeEmail: actor.Email,
		Fields:        sortedKeys(changes),
		OccurredAt:    time.Now().UTC(),
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Upsert(ctx, row); err != nil {
			return err
		}
		return s.enqueueEvent(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionProfileUpdateRequested,
		TargetType: audit.TargetProfileUpdate,
		TargetID:   actor.ID.String(),
		Details:    map[string]any{"fields": sortedKeys(changes)},
	})

	stored, err := s.repo.FindByEmployee(ctx, actor.ID.String())
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(*stored)
	return &resp, nil
}

func (s *service) GetMine(ctx context.Context, employeeID string) (*RequestResponse, error) {
	row, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileupdateerrors.ErrRequestNotFound
		}
		return nil, err
	}
	resp := mapToResponse(*row)
	return &resp, nil
}

func (s *service) List(ctx context.Context, status string, page, pageSize int) ([]RequestResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	rows, total, err := s.repo.FindAll(ctx, strings.ToUpper(status), (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]RequestResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, total, nil
}

// Adjudicate applies the HR decision. Approval merges the requested
// fields into the employee row inside the same transaction; rejection
// leaves the profile untouched. Either way the request is closed.
func (s *service) Adjudicate(ctx context.Context, actor audit.Actor, requestID string, req DecisionRequest) (*RequestResponse, error) {
	decision := strings.ToUpper(strings.TrimSpace(req.Decision))
	if decision != StatusApproved && decision != StatusRejected {
		return nil, profileupdateerrors.ErrInvalidDecision
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, profileupdateerrors.ErrInvalidRequestID
	}

	row, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileupdateerrors.ErrRequestNotFound
		}
		return nil, err
	}
	if row.Status != StatusPending {
		return nil, profileupdateerrors.ErrAlreadyDecided
	}

	var changes map[string]string
	if err := json.Unmarshal(row.Changes, &changes); err != nil {
		return nil, err
	}

	owner, err := s.employeeRepo.FindByID(ctx, row.EmployeeID.String())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row.Status = decision
	row.Remarks = strings.TrimSpace(req.Remarks)
	row.DecidedBy = &actor.ID
	row.DecidedAt = &now

	event := events.ProfileUpdateEvent{
		EventType:     events.EventProfileUpdateAdjudicated,
		RequestID:     contextutil.GetRequestID(ctx),
		EmployeeID:    row.EmployeeID.String(),
		EmployeeEmail: owner.Email,
		Decision:      decision,
		Fields:        sortedKeys(changes),
		OccurredAt:    now.UTC(),
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, row); err != nil {
			return err
		}
		if decision == StatusApproved {
			applyChanges(owner, changes)
			if err := s.employeeRepo.WithTx(tx).Update(ctx, owner); err != nil {
				return err
			}
		}
		return s.enqueueEvent(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionProfileUpdateApproved
	title := "Profile update approved"
	body := "Your profile changes were applied"
	if decision == StatusRejected {
		action = audit.ActionProfileUpdateRejected
		title = "Profile update rejected"
		body = "Your profile changes were not applied"
		if row.Remarks != "" {
			body += ": " + row.Remarks
		}
	}

	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     action,
		TargetType: audit.TargetProfileUpdate,
		TargetID:   row.ID.String(),
		Details:    map[string]any{"decision": decision, "fields": sortedKeys(changes)},
	})
	s.notifier.Notify(ctx, notification.Message{
		EmployeeID: row.EmployeeID,
		Type:       notification.TypeProfileUpdateDecided,
		Title:      title,
		Body:       body,
		Meta:       map[string]any{"request_id": row.ID.String(), "decision": decision},
	})

	resp := mapToResponse(*row)
	return &resp, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *gorm.DB, event events.ProfileUpdateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "profile_update",
		AggregateID:   event.EmployeeID,
		EventType:     event.EventType,
		Topic:         events.ProfileUpdateTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}

	repo := s.outbox
	if tx != nil {
		if sqlTx, ok := connection.SQLTx(tx); ok {
			repo = s.outbox.WithTx(sqlTx)
		}
	}
	return repo.Create(ctx, outboxEvent)
}

func filterChanges(req SubmitRequest) map[string]string {
	raw := map[string]string{
		"full_name":  req.FullName,
		"phone":      req.Phone,
		"department": req.Department,
		"position":   req.Position,
		"address":    req.Address,
	}

	changes := make(map[string]string)
	for field, value := range raw {
		if _, ok := allowedFields[field]; !ok {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			changes[field] = v
		}
	}
	return changes
}

func applyChanges(e *employee.Employee, changes map[string]string) {
	for field, value := range changes {
		switch field {
		case "full_name":
			e.FullName = value
		case "phone":
			e.Phone = value
		case "department":
			e.Department = value
		case "position":
			e.Position = value
		case "address":
			e.Address = value
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapToResponse(r UpdateRequest) RequestResponse {
	var changes map[string]string
	_ = json.Unmarshal(r.Changes, &changes)

	resp := RequestResponse{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		Changes:    changes,
		Status:     r.Status,
		Remarks:    r.Remarks,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		resp.DecidedAt = r.DecidedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
