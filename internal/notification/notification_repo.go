package notification

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, n *Notification) error
	FindAllByEmployee(ctx context.Context, employeeID string, offset, limit int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, employeeID, id string) (int64, error)
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, offset, limit int) ([]Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&Notification{}).Where("employee_id = ?", employeeID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Notification
	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

// MarkRead scopes by owner so one employee can never flip another's
// notification.
func (r *repository) MarkRead(ctx context.Context, employeeID, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("employee_id = ?", employeeID).
		Where("id = ?", id).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("employee_id = ?", employeeID).
		Where("read = false").
		Update("read", true)
	return res.RowsAffected, res.Error
}
