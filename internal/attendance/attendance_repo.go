package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// UnmarkedEmployee is what the reminder sweep needs to know about an
// employee who has not checked in for a given date.
type UnmarkedEmployee struct {
	ID       string
	Email    string
	FullName string
}

// ExportRow is one employee's aggregate over the export range, already
// joined with the identity columns.
type ExportRow struct {
	EmployeeCode string
	FullName     string
	PresentDays  int
	AbsentDays   int
	LeaveDays    int
	HalfdayDays  int
	WorkHours    float64
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)
	Save(ctx context.Context, r *Record) error
	FindByEmployee(ctx context.Context, employeeID string, from, to *time.Time, offset, limit int) ([]Record, int64, error)
	ExportRows(ctx context.Context, from, to time.Time) ([]ExportRow, error)
	ListUnmarked(ctx context.Context, date time.Time) ([]UnmarkedEmployee, error)
	MarkReminded(ctx context.Context, employeeID string, date time.Time, at time.Time) error
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

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date.Format("2006-01-02")).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) Save(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, from, to *time.Time, offset, limit int) ([]Record, int64, error) {
	q := r.db.WithContext(ctx).Model(&Record{}).Where("employee_id = ?", employeeID)
	if from != nil {
		q = q.Where("date >= ?", from.Format("2006-01-02"))
	}
	if to != nil {
		q = q.Where("date <= ?", to.Format("2006-01-02"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Record
	err := q.Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) ExportRows(ctx context.Context, from, to time.Time) ([]ExportRow, error) {
	var rows []ExportRow
	err := r.db.WithContext(ctx).
		Table("attendance_records ar").
		Select(`e.employee_code,
			e.full_name,
			COUNT(*) FILTER (WHERE ar.status = 'PRESENT') AS present_days,
			COUNT(*) FILTER (WHERE ar.status = 'ABSENT') AS absent_days,
			COUNT(*) FILTER (WHERE ar.status = 'LEAVE') AS leave_days,
			COUNT(*) FILTER (WHERE ar.status = 'HALFDAY') AS halfday_days,
			COALESCE(SUM(ar.work_hours), 0) AS work_hours`).
		Joins("JOIN employees e ON e.id = ar.employee_id AND e.deleted_at IS NULL").
		Where("ar.date >= ? AND ar.date < ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Group("e.employee_code, e.full_name").
		Order("e.employee_code ASC").
		Scan(&rows).Error
	return rows, err
}

// ListUnmarked returns employees with no check-in for date who have
// not been reminded yet.
func (r *repository) ListUnmarked(ctx context.Context, date time.Time) ([]UnmarkedEmployee, error) {
	day := date.Format("2006-01-02")

	var rows []UnmarkedEmployee
	err := r.db.WithContext(ctx).
		Table("employees e").
		Select("e.id::text AS id, e.email, e.full_name").
		Joins("LEFT JOIN attendance_records ar ON ar.employee_id = e.id AND ar.date = ?", day).
		Where("e.deleted_at IS NULL").
		Where("ar.id IS NULL OR (ar.check_in IS NULL AND ar.reminder_sent_at IS NULL)").
		Scan(&rows).Error
	return rows, err
}

// MarkReminded upserts the employee-day row with only the reminder
// timestamp so a re-run of the sweep skips this employee.
func (r *repository) MarkReminded(ctx context.Context, employeeID string, date time.Time, at time.Time) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO attendance_records (id, employee_id, date, status, reminder_sent_at, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, 'ABSENT', ?, now(), now())
		ON CONFLICT (employee_id, date) DO UPDATE
		SET reminder_sent_at = EXCLUDED.reminder_sent_at, updated_at = now()
	`, employeeID, date.Format("2006-01-02"), at).Error
}
