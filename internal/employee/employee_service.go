package employee

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/cache"
	"go-timeconsole/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	NameKeyPrefix    = "employees:name:"
	OptionsKeyPrefix = "employees:options:"
)

func NameKey(id string) string {
	return NameKeyPrefix + id
}

func OptionsKey(departmentID string) string {
	return OptionsKeyPrefix + departmentID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	// Names maps every requested id to a display name. Ids the directory
	// does not know map to Unknown.
	Names(ctx context.Context, ids []string) (map[string]string, error)
	GetOptions(ctx context.Context, departmentID string) ([]EmployeeResponse, error)
}

type service struct {
	repo   Repository
	aside  *cache.Aside
	ttl    time.Duration
	logger *zap.Logger
}

// NewService builds the employee directory. provider may be nil, in which
// case every call reads the store.
func NewService(repo Repository, provider cache.Provider, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, aside: cache.NewAside(provider, l), ttl: ttl, logger: l}
}

func (s *service) Names(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	missing := make([]string, 0, len(ids))
	provider := s.aside.Provider()

	for _, id := range dedupe(ids) {
		if provider != nil {
			if b, err := provider.Get(ctx, NameKey(id)); err == nil {
				out[id] = string(b)
				continue
			} else if !errors.Is(err, cache.ErrMiss) {
				s.logger.Warn("employee name cache read failed", zap.String("employee_id", id), zap.Error(err))
			}
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	s.logger.Debug("employee names cache miss",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int("requested", len(ids)),
		zap.Int("missing", len(missing)),
	)
	found, err := s.repo.FindByIDs(ctx, missing)
	if err != nil {
		s.logger.Error("employee names lookup failed", zap.Int("ids", len(missing)), zap.Error(err))
		return nil, apperror.Upstream(err, "failed to load employee names")
	}

	for _, e := range found {
		out[e.ID] = e.Name
		if provider != nil {
			if err := provider.Set(ctx, NameKey(e.ID), []byte(e.Name), s.ttl); err != nil {
				s.logger.Warn("employee name cache write failed", zap.String("employee_id", e.ID), zap.Error(err))
			}
		}
	}
	// Unknown ids are not cached so a later insert shows up immediately.
	for _, id := range missing {
		if _, ok := out[id]; !ok {
			out[id] = UnknownName
		}
	}
	return out, nil
}

func (s *service) GetOptions(ctx context.Context, departmentID string) ([]EmployeeResponse, error) {
	resp, err := cache.Fetch(ctx, s.aside, OptionsKey(departmentID), s.ttl, func(ctx context.Context) ([]EmployeeResponse, error) {
		emps, err := s.repo.List(ctx, departmentID)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(emps), nil
	})
	if err != nil {
		s.logger.Error("employee options failed", zap.String("department_id", departmentID), zap.Error(err))
		return nil, apperror.Upstream(err, "failed to load employees")
	}
	return resp, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = EmployeeResponse{
			ID:           e.ID,
			Name:         e.Name,
			Email:        e.Email,
			DepartmentID: e.DepartmentID,
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}
