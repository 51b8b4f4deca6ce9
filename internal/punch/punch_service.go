package punch

import (
	"context"
	"errors"
	"time"

	puncherrors "go-timeconsole/internal/punch/errors"
	"go-timeconsole/internal/recordstore"
	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/timezone"

	"go.uber.org/zap"
)

// EmployeeNames resolves display names for a batch of employee ids.
type EmployeeNames interface {
	Names(ctx context.Context, ids []string) (map[string]string, error)
}

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, req ListPunchesRequest) ([]PunchResponse, error)
	GetByID(ctx context.Context, id string) (PunchResponse, error)
}

type service struct {
	repo   Repository
	zones  timezone.Lookup
	names  EmployeeNames
	logger *zap.Logger
}

func NewService(repo Repository, zones timezone.Lookup, names EmployeeNames, logger ...*zap.Logger) Service {
	l := zap.L().Named("punch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("punch.service")
	}
	return &service{repo: repo, zones: zones, names: names, logger: l}
}

func (s *service) List(ctx context.Context, req ListPunchesRequest) ([]PunchResponse, error) {
	if err := validateRange(req.From, req.To); err != nil {
		return nil, err
	}

	punches, err := s.repo.List(ctx, ListFilter{EmployeeID: req.EmployeeID, From: req.From, To: req.To})
	if err != nil {
		s.logger.Error("list punches failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return nil, apperror.Upstream(err, "failed to list punches")
	}

	names := s.lookupNames(ctx, punches)
	resolver := timezone.NewResolver(s.zones, s.logger)
	out := make([]PunchResponse, 0, len(punches))
	for _, p := range punches {
		out = append(out, ToResponse(ctx, p, resolver, names[p.EmployeeID]))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PunchResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordstore.ErrRecordNotFound) {
			return PunchResponse{}, puncherrors.ErrPunchNotFound
		}
		s.logger.Error("get punch failed", zap.String("punch_id", id), zap.Error(err))
		return PunchResponse{}, apperror.Upstream(err, "failed to load punch")
	}

	names := s.lookupNames(ctx, []Punch{p})
	return ToResponse(ctx, p, timezone.NewResolver(s.zones, s.logger), names[p.EmployeeID]), nil
}

func (s *service) lookupNames(ctx context.Context, punches []Punch) map[string]string {
	if s.names == nil {
		return nil
	}
	seen := make(map[string]bool, len(punches))
	ids := make([]string, 0, len(punches))
	for _, p := range punches {
		if p.EmployeeID == "" || seen[p.EmployeeID] {
			continue
		}
		seen[p.EmployeeID] = true
		ids = append(ids, p.EmployeeID)
	}
	if len(ids) == 0 {
		return nil
	}
	names, err := s.names.Names(ctx, ids)
	if err != nil {
		s.logger.Warn("employee name lookup failed", zap.Int("employees", len(ids)), zap.Error(err))
		return nil
	}
	return names
}

func validateRange(from, to string) error {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = time.Parse(time.DateOnly, from); err != nil {
			return puncherrors.ErrInvalidDateFormat
		}
	}
	if to != "" {
		if end, err = time.Parse(time.DateOnly, to); err != nil {
			return puncherrors.ErrInvalidDateFormat
		}
	}
	if from != "" && to != "" && start.After(end) {
		return puncherrors.ErrInvalidDateRange
	}
	return nil
}

// ToResponse renders a punch for display. Zones resolve through resolver so
// callers control memo lifetime.
func ToResponse(ctx context.Context, p Punch, resolver *timezone.Resolver, name string) PunchResponse {
	inZone := resolver.Resolve(ctx, p.TimezoneRef)
	outRef := p.PunchOutTimezoneRef
	if outRef == "" {
		outRef = p.TimezoneRef
	}
	outZone := resolver.Resolve(ctx, outRef)

	resp := PunchResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: name,
		ClientID:     p.ClientID,
		PunchInTime:  p.PunchInTime,
		PunchOutTime: p.PunchOutTime,
		Timezone:     zoneDisplay(p.TimezoneRef, inZone, p.PunchInTime),
		PunchOutZone: zoneDisplay(outRef, outZone, p.PunchOutTime),
		Memo:         p.Memo,
		ProjectIDs:   p.ProjectIDs,
		TimeCardID:   p.TimeCardID,
	}
	if resp.ProjectIDs == nil {
		resp.ProjectIDs = []string{}
	}
	if t, ok := ParseTimestamp(p.PunchInTime); ok {
		resp.PunchInLocal = timezone.FormatLocal(t, inZone)
	}
	if t, ok := ParseTimestamp(p.PunchOutTime); ok {
		resp.PunchOutLocal = timezone.FormatLocal(t, outZone)
	}
	if minutes, ok := p.Minutes(); ok {
		resp.DurationMinutes = &minutes
	}
	return resp
}

func zoneDisplay(ref string, z timezone.Zone, at string) ZoneDisplay {
	t, ok := ParseTimestamp(at)
	if !ok {
		t = time.Now()
	}
	return ZoneDisplay{Ref: ref, Name: z.DisplayName, Abbreviation: timezone.Abbreviation(z, t)}
}
