package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor identifies who performed a privileged transition, resolved from
// the request's verified claims.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
	IP    string
	Agent string
}

// Entry is the write-side input; Details is marshalled to JSON.
type Entry struct {
	Actor      Actor
	Action     string
	TargetType string
	TargetID   string
	Details    map[string]any
}

// Recorder is the only audit dependency the workflow services take.
// Record is best-effort: failures are logged and must never block the
// primary state transition.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Recorder
	List(ctx context.Context, filter Filter, page, pageSize int) ([]EntryResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, entry Entry) {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		s.logger.Error("marshal audit details failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		details = []byte("{}")
	}

	row := &AuditEntry{
		ID:         uuid.New(),
		ActorID:    entry.Actor.ID,
		ActorEmail: entry.Actor.Email,
		ActorRole:  entry.Actor.Role,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Details:    details,
		IP:         entry.Actor.IP,
		UserAgent:  entry.Actor.Agent,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("target_type", entry.TargetType),
			zap.String("target_id", entry.TargetID),
			zap.Error(err),
		)
		return
	}
}

func (s *service) List(ctx context.Context, filter Filter, page, pageSize int) ([]EntryResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	rows, total, err := s.repo.FindAll(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EntryResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, total, nil
}

func mapToResponse(e AuditEntry) EntryResponse {
	var details map[string]any
	if len(e.Details) > 0 {
		_ = json.Unmarshal(e.Details, &details)
	}
	return EntryResponse{
		ID:         e.ID.String(),
		ActorID:    e.ActorID.String(),
		ActorEmail: e.ActorEmail,
		ActorRole:  e.ActorRole,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		Details:    details,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
