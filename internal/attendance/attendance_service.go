package attendance

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	attendanceerrors "go-hrdocs/internal/attendance/errors"
	"go-hrdocs/internal/audit"
	employeeerrors "go-hrdocs/internal/employee/errors"
	"go-hrdocs/internal/mailer"
	"go-hrdocs/internal/rbac"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, actor audit.Actor, employeeID string, req MarkRequest) (*RecordResponse, error)
	History(ctx context.Context, requesterID, requesterRole, employeeID, from, to string, page, pageSize int) ([]RecordResponse, int64, error)
	ExportPayroll(ctx context.Context, month string) ([]byte, string, error)
	SendReminders(ctx context.Context, date time.Time) (int, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	mail     mailer.Mailer
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, mail mailer.Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:     repo,
		recorder: recorder,
		mail:     mail,
		now:      time.Now,
		logger:   l,
	}
}

// Mark merges the request into the employee-day row. Only fields
// present in the request change; in particular a later check-out mark
// never erases the morning's check-in.
func (s *service) Mark(ctx context.Context, actor audit.Actor, employeeID string, req MarkRequest) (*RecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	// "Today" is the server-local calendar day, same as the reminder
	// sweep; truncating the instant would shift early-morning marks to
	// the previous UTC day.
	n := s.now()
	date := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		date = parsed
	}

	checkIn, err := parseTimestamp(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseTimestamp(req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.Status != "" && !validStatus(req.Status) {
		return nil, attendanceerrors.ErrInvalidStatus
	}

	rec, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		eid, _ := uuid.Parse(employeeID)
		rec = &Record{
			ID:         uuid.New(),
			EmployeeID: eid,
			Date:       date,
			Status:     StatusPresent,
		}
	}

	if checkIn != nil {
		// The reminder sweep seeds the day as ABSENT; a real check-in
		// supersedes that unless the request states a status itself.
		if req.Status == "" && rec.Status == StatusAbsent && rec.ReminderSentAt != nil {
			rec.Status = StatusPresent
		}
		rec.CheckIn = checkIn
	}
	if checkOut != nil {
		rec.CheckOut = checkOut
	}
	if req.Status != "" {
		rec.Status = req.Status
	}
	if req.Note != "" {
		rec.Note = req.Note
	}
	if rec.CheckIn != nil && rec.CheckOut != nil {
		if rec.CheckOut.Before(*rec.CheckIn) {
			return nil, attendanceerrors.ErrCheckOutBeforeCheckIn
		}
		rec.WorkHours = rec.CheckOut.Sub(*rec.CheckIn).Hours()
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionAttendanceMarked,
		TargetType: audit.TargetAttendance,
		TargetID:   rec.ID.String(),
		Details:    map[string]any{"employee_id": employeeID, "date": date.Format("2006-01-02"), "status": rec.Status},
	})

	resp := mapToResponse(*rec)
	return &resp, nil
}

func (s *service) History(ctx context.Context, requesterID, requesterRole, employeeID, from, to string, page, pageSize int) ([]RecordResponse, int64, error) {
	if employeeID == "" {
		employeeID = requesterID
	}
	if employeeID != requesterID && !rbac.IsPrivileged(requesterRole) {
		return nil, 0, attendanceerrors.ErrNotOwnHistory
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 31
	}

	fromDate, err := parseDate(from)
	if err != nil {
		return nil, 0, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.FindByEmployee(ctx, employeeID, fromDate, toDate, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]RecordResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, total, nil
}

// ExportPayroll renders the month as CSV. The UTF-8 BOM keeps
// spreadsheet tools from mangling non-ASCII names.
func (s *service) ExportPayroll(ctx context.Context, month string) ([]byte, string, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, "", attendanceerrors.ErrInvalidMonth
	}
	to := from.AddDate(0, 1, 0)

	rows, err := s.repo.ExportRows(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	w := csv.NewWriter(&buf)

	header := []string{"employee_code", "full_name", "present_days", "absent_days", "leave_days", "halfday_days", "work_hours"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}
	for _, row := range rows {
		record := []string{
			row.EmployeeCode,
			row.FullName,
			strconv.Itoa(row.PresentDays),
			strconv.Itoa(row.AbsentDays),
			strconv.Itoa(row.LeaveDays),
			strconv.Itoa(row.HalfdayDays),
			strconv.FormatFloat(row.WorkHours, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s.csv", month)
	return buf.Bytes(), filename, nil
}

// SendReminders mails every employee who has not checked in for date
// and stamps the row so a second run the same day sends nothing.
func (s *service) SendReminders(ctx context.Context, date time.Time) (int, error) {
	unmarked, err := s.repo.ListUnmarked(ctx, date)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, e := range unmarked {
		body := fmt.Sprintf(
			"Hi %s,\n\nYou have not marked attendance for %s yet. Please check in or file your leave status.",
			e.FullName, date.Format("2006-01-02"),
		)
		if err := s.mail.Send(ctx, e.Email, "Attendance reminder", body); err != nil {
			s.logger.Error("attendance reminder send failed",
				zap.String("employee_id", e.ID),
				zap.Error(err),
			)
			continue
		}
		if err := s.repo.MarkReminded(ctx, e.ID, date, s.now()); err != nil {
			s.logger.Error("reminder stamp failed", zap.String("employee_id", e.ID), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("attendance reminder sweep finished",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("sent", sent),
		zap.Int("candidates", len(unmarked)),
	)
	return sent, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	return &d, nil
}

func parseTimestamp(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTimestamp
	}
	return &ts, nil
}

func mapToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		Date:       r.Date.Format("2006-01-02"),
		Status:     r.Status,
		WorkHours:  r.WorkHours,
		Note:       r.Note,
	}
	if r.CheckIn != nil {
		resp.CheckIn = r.CheckIn.UTC().Format(time.RFC3339)
	}
	if r.CheckOut != nil {
		resp.CheckOut = r.CheckOut.UTC().Format(time.RFC3339)
	}
	if r.ReminderSentAt != nil {
		resp.ReminderSentAt = r.ReminderSentAt.UTC().Format(time.RFC3339)
	}
	return resp
}
