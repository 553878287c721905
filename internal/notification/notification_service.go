package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	notificationerrors "go-hrdocs/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Message is the write-side input used by the workflow services.
type Message struct {
	EmployeeID uuid.UUID
	Type       string
	Title      string
	Body       string
	Meta       map[string]any
}

// Notifier is the dependency other domains take. Notify is best-effort:
// a failed append is logged and never fails the primary operation.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Notifier
	List(ctx context.Context, employeeID string, page, pageSize int) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, employeeID, id string) error
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Notify(ctx context.Context, msg Message) {
	meta, err := json.Marshal(msg.Meta)
	if err != nil {
		s.logger.Error("marshal notification meta failed", zap.Error(err))
		meta = nil
	}

	row := &Notification{
		ID:         uuid.New(),
		EmployeeID: msg.EmployeeID,
		Type:       msg.Type,
		Title:      msg.Title,
		Message:    msg.Body,
		Meta:       meta,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("notification append failed",
			zap.String("employee_id", msg.EmployeeID.String()),
			zap.String("type", msg.Type),
			zap.Error(err),
		)
	}
}

func (s *service) List(ctx context.Context, employeeID string, page, pageSize int) ([]NotificationResponse, int64, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, 0, notificationerrors.ErrInvalidEmployeeID
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	rows, total, err := s.repo.FindAllByEmployee(ctx, employeeID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, total, nil
}

func (s *service) MarkRead(ctx context.Context, employeeID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	affected, err := s.repo.MarkRead(ctx, employeeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, employeeID)
}

func mapToResponse(n Notification) NotificationResponse {
	var meta map[string]any
	if len(n.Meta) > 0 {
		_ = json.Unmarshal(n.Meta, &meta)
	}
	return NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Meta:      meta,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
