package profileupdate

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=profileupdate_repo.go -destination=mock/profileupdate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// Upsert replaces the employee's request wholesale, keyed by the
	// unique employee_id column.
	Upsert(ctx context.Context, r *UpdateRequest) error
	FindByID(ctx context.Context, id string) (*UpdateRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) (*UpdateRequest, error)
	FindAll(ctx context.Context, status string, offset, limit int) ([]UpdateRequest, int64, error)
	Update(ctx context.Context, r *UpdateRequest) error
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

func (r *repository) Upsert(ctx context.Context, req *UpdateRequest) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"changes", "status", "remarks", "decided_by", "decided_at", "updated_at",
		}),
	}).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*UpdateRequest, error) {
	var req UpdateRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*UpdateRequest, error) {
	var req UpdateRequest
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindAll(ctx context.Context, status string, offset, limit int) ([]UpdateRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&UpdateRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []UpdateRequest
	err := q.Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) Update(ctx context.Context, req *UpdateRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
