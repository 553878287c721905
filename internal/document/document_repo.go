package document

import (
	"context"

	"gorm.io/gorm"
)

// Filter narrows admin-facing document listings.
type Filter struct {
	EmployeeID string
	Status     Status
}

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id string) (*Document, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Document, error)
	FindAll(ctx context.Context, filter Filter, offset, limit int) ([]Document, int64, error)
	FindByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]Document, error)
	Update(ctx context.Context, d *Document) error
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

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Document, error) {
	var rows []Document
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, filter Filter, offset, limit int) ([]Document, int64, error) {
	q := r.db.WithContext(ctx).Model(&Document{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Document
	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) FindByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]Document, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var rows []Document
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}
