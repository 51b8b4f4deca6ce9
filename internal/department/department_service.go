package department

import (
	"context"
	"time"

	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/cache"

	"go.uber.org/zap"
)

const ListCacheKey = "departments:all"

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, req ListDepartmentsRequest) ([]DepartmentResponse, error)
}

type service struct {
	repo   Repository
	aside  *cache.Aside
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(repo Repository, provider cache.Provider, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, aside: cache.NewAside(provider, l), ttl: ttl, logger: l}
}

func (s *service) GetAll(ctx context.Context, req ListDepartmentsRequest) ([]DepartmentResponse, error) {
	all, err := cache.Fetch(ctx, s.aside, ListCacheKey, s.ttl, func(ctx context.Context) ([]DepartmentResponse, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(depts), nil
	})
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, apperror.Upstream(err, "failed to list departments")
	}

	if req.IncludeInactive {
		return all, nil
	}
	active := make([]DepartmentResponse, 0, len(all))
	for _, d := range all {
		if d.Active {
			active = append(active, d)
		}
	}
	return active, nil
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = DepartmentResponse{ID: d.ID, Name: d.Name, Code: d.Code, Active: d.Active}
	}
	return res
}
