package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrdocs/internal/audit"
	employeeerrors "go-hrdocs/internal/employee/errors"
	"go-hrdocs/internal/rbac"
	"go-hrdocs/internal/shared/apperror"
	"go-hrdocs/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	counterTypeEmployeeCode = "employee_code"

	optionsCacheKey = "employee:options"
	optionsCacheTTL = 5 * time.Minute
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor audit.Actor, req CreateEmployeeRequest) (*EmployeeResponse, error)
	List(ctx context.Context, search string, page, pageSize int) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (*EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	Update(ctx context.Context, actor audit.Actor, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error)
	Delete(ctx context.Context, actor audit.Actor, id string) error
}

type service struct {
	repo        Repository
	counterRepo counter.Repository
	recorder    audit.Recorder
	redis       *redis.Client
	group       singleflight.Group
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	counterRepo counter.Repository,
	recorder audit.Recorder,
	redisClient *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:        repo,
		counterRepo: counterRepo,
		recorder:    recorder,
		redis:       redisClient,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, actor audit.Actor, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	role := rbac.RoleEmployee
	if req.Role != "" {
		role = rbac.NormalizeRole(req.Role)
		if !rbac.IsValidRole(role) {
			return nil, employeeerrors.ErrInvalidRole
		}
	}

	code := req.EmployeeCode
	if code == "" {
		next, err := s.counterRepo.GetNextValue(ctx, counterTypeEmployeeCode)
		if err != nil {
			return nil, err
		}
		code = fmt.Sprintf("EMP-%06d", next)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	e := &Employee{
		ID:           uuid.New(),
		EmployeeCode: code,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Department:   req.Department,
		Position:     req.Position,
		Address:      req.Address,
	}
	if req.JoinDate != "" {
		joined, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return nil, apperror.InvalidField("join_date")
		}
		e.JoinDate = &joined
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, mapUniqueViolation(err)
	}

	s.invalidateOptions(ctx)
	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionEmployeeCreated,
		TargetType: audit.TargetEmployee,
		TargetID:   e.ID.String(),
		Details:    map[string]any{"email": e.Email, "role": e.Role},
	})

	resp := MapToResponse(*e)
	return &resp, nil
}

func (s *service) List(ctx context.Context, search string, page, pageSize int) ([]EmployeeResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	rows, total, err := s.repo.FindAll(ctx, search, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EmployeeResponse, len(rows))
	for i, row := range rows {
		resp[i] = MapToResponse(row)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	resp := MapToResponse(*e)
	return &resp, nil
}

// GetOptions serves the lightweight picker list behind a redis cache.
// singleflight collapses concurrent misses into one database query.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, optionsCacheKey).Result()
		if err == nil {
			var options []EmployeeOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				return options, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("options cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(optionsCacheKey, func() (any, error) {
		rows, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeOption, len(rows))
		for i, row := range rows {
			options[i] = EmployeeOption{
				ID:       row.ID.String(),
				FullName: row.FullName,
				Email:    row.Email,
			}
		}

		if s.redis != nil {
			if payload, err := json.Marshal(options); err == nil {
				if err := s.redis.Set(ctx, optionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("options cache write failed", zap.Error(err))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) Update(ctx context.Context, actor audit.Actor, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	changed := map[string]any{}
	if req.FullName != "" && req.FullName != e.FullName {
		changed["full_name"] = req.FullName
		e.FullName = req.FullName
	}
	if req.Phone != "" && req.Phone != e.Phone {
		changed["phone"] = req.Phone
		e.Phone = req.Phone
	}
	if req.Department != "" && req.Department != e.Department {
		changed["department"] = req.Department
		e.Department = req.Department
	}
	if req.Position != "" && req.Position != e.Position {
		changed["position"] = req.Position
		e.Position = req.Position
	}
	if req.Address != "" && req.Address != e.Address {
		changed["address"] = req.Address
		e.Address = req.Address
	}
	if req.Role != "" {
		role := rbac.NormalizeRole(req.Role)
		if !rbac.IsValidRole(role) {
			return nil, employeeerrors.ErrInvalidRole
		}
		if role != e.Role {
			changed["role"] = role
			e.Role = role
		}
	}

	if len(changed) > 0 {
		if err := s.repo.Update(ctx, e); err != nil {
			return nil, mapUniqueViolation(err)
		}
		s.invalidateOptions(ctx)
		s.recorder.Record(ctx, audit.Entry{
			Actor:      actor,
			Action:     audit.ActionEmployeeUpdated,
			TargetType: audit.TargetEmployee,
			TargetID:   e.ID.String(),
			Details:    changed,
		})
	}

	resp := MapToResponse(*e)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, actor audit.Actor, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	if rbac.NormalizeRole(e.Role) == rbac.RoleSuperAdmin {
		return employeeerrors.ErrCannotDeleteSuperAdmin
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	s.invalidateOptions(ctx)
	s.recorder.Record(ctx, audit.Entry{
		Actor:      actor,
		Action:     audit.ActionEmployeeDeleted,
		TargetType: audit.TargetEmployee,
		TargetID:   id,
		Details:    map[string]any{"email": e.Email},
	})
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("options cache invalidation failed", zap.Error(err))
	}
}

func MapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID.String(),
		EmployeeCode: e.EmployeeCode,
		Email:        e.Email,
		Role:         e.Role,
		FullName:     e.FullName,
		Phone:        e.Phone,
		Department:   e.Department,
		Position:     e.Position,
		Address:      e.Address,
	}
	if e.JoinDate != nil {
		resp.JoinDate = e.JoinDate.Format("2006-01-02")
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
