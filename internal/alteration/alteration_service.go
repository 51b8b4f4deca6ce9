package alteration

import (
	"context"
	"errors"
	"strings"
	"time"

	alterationerrors "go-timeconsole/internal/alteration/errors"
	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/events"
	"go-timeconsole/internal/messaging/kafka"
	"go-timeconsole/internal/punch"
	"go-timeconsole/internal/recordstore"
	"go-timeconsole/internal/shared/apperror"
	"go-timeconsole/internal/shared/cache"
	"go-timeconsole/internal/shared/contextutil"
	"go-timeconsole/internal/timezone"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	viewAlterations = "alterations"
	aggregateType   = "punch_alteration"
)

type Config struct {
	// BulkConcurrency bounds parallel approvals in one batch. Values below one
	// run the batch sequentially.
	BulkConcurrency int
	// LockTTL is how long a decision lock survives a crashed holder.
	LockTTL time.Duration
}

func DecisionLockKey(id string) string {
	return "alteration:decide:" + id
}

//go:generate mockgen -source=alteration_service.go -destination=mock/alteration_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, req ListAlterationsRequest) ([]AlterationResponse, error)
	Decide(ctx context.Context, principalID, id string, outcome Outcome, reviewNotes string) (DecisionResult, error)
	BulkApprove(ctx context.Context, principalID string, ids []string, reviewNotes string) (BulkResult, error)
	ReapplyPunchPatch(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	punches punch.Repository
	perms   domain.PermissionChecker
	locks   cache.Provider
	outbox  kafka.OutboxRepository
	zones   timezone.Lookup
	cfg     Config
	logger  *zap.Logger
}

// NewService wires the approval workflow. locks, outbox and zones are
// optional; without locks concurrent decisions on one id are not guarded.
func NewService(
	repo Repository,
	punches punch.Repository,
	perms domain.PermissionChecker,
	locks cache.Provider,
	outbox kafka.OutboxRepository,
	zones timezone.Lookup,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("alteration.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("alteration.service")
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}
	return &service{
		repo:    repo,
		punches: punches,
		perms:   perms,
		locks:   locks,
		outbox:  outbox,
		zones:   zones,
		cfg:     cfg,
		logger:  l,
	}
}

func (s *service) List(ctx context.Context, req ListAlterationsRequest) ([]AlterationResponse, error) {
	items, err := s.repo.List(ctx, req.Status)
	if err != nil {
		s.logger.Error("list alterations failed", zap.String("status", req.Status), zap.Error(err))
		return nil, apperror.Upstream(err, "failed to list punch alterations")
	}

	out := make([]AlterationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, mapToResponse(a))
	}
	return out, nil
}

func (s *service) Decide(ctx context.Context, principalID, id string, outcome Outcome, reviewNotes string) (DecisionResult, error) {
	if outcome != OutcomeApprove && outcome != OutcomeReject {
		return DecisionResult{}, alterationerrors.ErrInvalidOutcome
	}
	if strings.TrimSpace(id) == "" {
		return DecisionResult{}, apperror.RequiredField("Alteration Id")
	}
	if err := s.authorize(ctx, principalID, id); err != nil {
		return DecisionResult{}, err
	}
	return s.decide(ctx, principalID, id, outcome, reviewNotes)
}

func (s *service) BulkApprove(ctx context.Context, principalID string, ids []string, reviewNotes string) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, alterationerrors.ErrEmptyBulkRequest
	}
	if err := s.authorize(ctx, principalID, ""); err != nil {
		return BulkResult{}, err
	}

	ids = uniqueIDs(ids)
	s.logger.Info("bulk approve requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int("count", len(ids)),
		zap.Int("concurrency", max(1, s.cfg.BulkConcurrency)),
	)

	results := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(max(1, s.cfg.BulkConcurrency))
	for i, id := range ids {
		g.Go(func() error {
			_, results[i] = s.decide(ctx, principalID, id, OutcomeApprove, reviewNotes)
			return nil
		})
	}
	_ = g.Wait()

	out := BulkResult{ApprovedIDs: []string{}, Failures: []BulkFailure{}}
	for i, id := range ids {
		if results[i] == nil {
			out.ApprovedIDs = append(out.ApprovedIDs, id)
			continue
		}
		out.Failures = append(out.Failures, BulkFailure{ID: id, Reason: failureReason(results[i])})
	}

	s.logger.Info("bulk approve finished",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int("approved", len(out.ApprovedIDs)),
		zap.Int("failed", len(out.Failures)),
	)
	return out, nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence of each.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ReapplyPunchPatch writes the patch of an already approved alteration
// again. Field writes are idempotent so repeated delivery is harmless.
func (s *service) ReapplyPunchPatch(ctx context.Context, id string) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapLoadError(id, err)
	}
	if a.Status != StatusApproved {
		return alterationerrors.ErrNotApproved
	}

	patch := ComputePunchPatch(a)
	if a.PunchID == "" || patch.IsEmpty() {
		s.logger.Info("reapply punch patch skipped, nothing to write", zap.String("alteration_id", id))
		return nil
	}
	if _, err := s.punches.Update(ctx, a.PunchID, map[string]any(patch)); err != nil {
		s.logger.Error("reapply punch patch failed",
			zap.String("alteration_id", id),
			zap.String("punch_id", a.PunchID),
			zap.Error(err),
		)
		return apperror.Upstream(err, "failed to re-apply punch patch")
	}

	s.logger.Info("reapply punch patch success",
		zap.String("alteration_id", id),
		zap.String("punch_id", a.PunchID),
		zap.Strings("fields", patch.FieldNames()),
	)
	return nil
}

func (s *service) authorize(ctx context.Context, principalID, resourceID string) error {
	if s.perms == nil || principalID == "" {
		return alterationerrors.ErrNotPermitted
	}
	allowed, err := s.perms.CanPerform(ctx, domain.PermissionRequest{
		PrincipalID:  principalID,
		App:          domain.AppHR,
		View:         viewAlterations,
		ResourceType: domain.ResourcePunchAlteration,
		ResourceID:   resourceID,
		Action:       domain.ActionApprove,
	})
	if err != nil {
		s.logger.Error("permission check failed", zap.String("principal_id", principalID), zap.Error(err))
		return apperror.Upstream(err, "permission check failed")
	}
	if !allowed {
		s.logger.Warn("alteration decision not permitted",
			zap.String("principal_id", principalID),
			zap.String("alteration_id", resourceID),
		)
		return alterationerrors.ErrNotPermitted
	}
	return nil
}

// decide runs one pending -> approved|rejected transition. The alteration
// write happens first; a failed punch write afterwards is reported but the
// decision stands and a retry is queued.
func (s *service) decide(ctx context.Context, principalID, id string, outcome Outcome, reviewNotes string) (DecisionResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide alteration requested",
		zap.String("request_id", rid),
		zap.String("alteration_id", id),
		zap.String("outcome", string(outcome)),
	)

	release, err := s.acquire(ctx, id)
	if err != nil {
		return DecisionResult{}, err
	}
	defer release()

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DecisionResult{}, s.mapLoadError(id, err)
	}
	if !a.IsPending() {
		s.logger.Warn("decide alteration invalid state",
			zap.String("alteration_id", id),
			zap.String("status", a.Status),
		)
		return DecisionResult{}, alterationerrors.ErrNotPending
	}

	status := StatusRejected
	if outcome == OutcomeApprove {
		status = StatusApproved
	}
	reviewedAt := time.Now().UTC().Format(time.RFC3339)

	fields := map[string]any{
		FieldStatus.Name:      status,
		FieldReviewedAt.Name:  reviewedAt,
		FieldReviewedBy.Name:  principalID,
		FieldReviewNotes.Name: reviewNotes,
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.logger.Error("decide alteration persist failed", zap.String("alteration_id", id), zap.Error(err))
		return DecisionResult{}, apperror.Upstream(err, "failed to record alteration decision")
	}

	result := DecisionResult{
		AlterationID:  id,
		Status:        status,
		ReviewedAt:    reviewedAt,
		ReviewedBy:    principalID,
		PunchID:       a.PunchID,
		AppliedFields: []string{},
	}

	var punchErr error
	if status == StatusApproved {
		punchErr = s.applyPatch(ctx, a, &result)
	}
	s.enqueueDecided(ctx, a, result)

	s.logger.Info("decide alteration success",
		zap.String("request_id", rid),
		zap.String("alteration_id", id),
		zap.String("status", status),
		zap.Strings("applied_fields", result.AppliedFields),
	)
	return result, punchErr
}

func (s *service) applyPatch(ctx context.Context, a Alteration, result *DecisionResult) error {
	patch := ComputePunchPatch(a)
	if a.PunchID == "" || patch.IsEmpty() {
		return nil
	}

	updated, err := s.punches.Update(ctx, a.PunchID, map[string]any(patch))
	if err != nil {
		s.logger.Error("apply punch patch failed",
			zap.String("alteration_id", a.ID),
			zap.String("punch_id", a.PunchID),
			zap.Error(err),
		)
		s.enqueueRetry(ctx, a, err)
		return apperror.Upstream(err, "alteration approved but the punch update failed")
	}

	result.AppliedFields = patch.FieldNames()
	resp := punch.ToResponse(ctx, updated, timezone.NewResolver(s.zones, s.logger), "")
	result.Punch = &resp
	return nil
}

func (s *service) acquire(ctx context.Context, id string) (func(), error) {
	if s.locks == nil {
		return func() {}, nil
	}

	key := DecisionLockKey(id)
	ok, err := s.locks.SetIfAbsent(ctx, key, []byte(uuid.NewString()), s.cfg.LockTTL)
	if err != nil {
		s.logger.Warn("decision lock unavailable, continuing unguarded", zap.String("alteration_id", id), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, alterationerrors.ErrDecisionInProgress
	}
	return func() {
		if err := s.locks.Delete(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Warn("decision lock release failed", zap.String("alteration_id", id), zap.Error(err))
		}
	}, nil
}

func (s *service) mapLoadError(id string, err error) error {
	if errors.Is(err, recordstore.ErrRecordNotFound) {
		return alterationerrors.ErrAlterationNotFound
	}
	s.logger.Error("load alteration failed", zap.String("alteration_id", id), zap.Error(err))
	return apperror.Upstream(err, "failed to load punch alteration")
}

func (s *service) enqueueDecided(ctx context.Context, a Alteration, result DecisionResult) {
	rid := contextutil.GetRequestID(ctx)
	s.enqueue(ctx, a.ID, events.EventTypeAlterationDecided, events.AlterationDecidedTopic, events.AlterationDecidedEvent{
		EventID:      uuid.NewString(),
		EventType:    events.EventTypeAlterationDecided,
		RequestID:    rid,
		AlterationID: a.ID,
		PunchID:      a.PunchID,
		Status:       result.Status,
		ReviewedBy:   result.ReviewedBy,
		OccurredAt:   time.Now().UTC(),
	})
}

func (s *service) enqueueRetry(ctx context.Context, a Alteration, cause error) {
	rid := contextutil.GetRequestID(ctx)
	s.enqueue(ctx, a.ID, events.EventTypePunchPatchRetry, events.PunchPatchRetryTopic, events.PunchPatchRetryEvent{
		EventID:      uuid.NewString(),
		EventType:    events.EventTypePunchPatchRetry,
		RequestID:    rid,
		AlterationID: a.ID,
		PunchID:      a.PunchID,
		Reason:       cause.Error(),
		OccurredAt:   time.Now().UTC(),
	})
}

// enqueue never fails the caller; the decision already stands.
func (s *service) enqueue(ctx context.Context, aggregateID, eventType, topic string, payload any) {
	if s.outbox == nil {
		return
	}
	rid := contextutil.GetRequestID(ctx)
	row, err := kafka.NewOutboxEvent(rid, aggregateType, aggregateID, eventType, topic, payload)
	if err == nil {
		err = s.outbox.Create(ctx, row)
	}
	if err != nil {
		s.logger.Error("queue outbox event failed",
			zap.String("request_id", rid),
			zap.String("alteration_id", aggregateID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("outbox event queued",
		zap.String("alteration_id", aggregateID),
		zap.String("event_type", eventType),
		zap.String("topic", topic),
	)
}

func failureReason(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func mapToResponse(a Alteration) AlterationResponse {
	return AlterationResponse{
		ID:          a.ID,
		PunchID:     a.PunchID,
		EmployeeID:  a.EmployeeID,
		Status:      a.Status,
		RequestedAt: a.RequestedAt,
		ReviewedAt:  a.ReviewedAt,
		ReviewedBy:  a.ReviewedBy,
		ReviewNotes: a.ReviewNotes,
		Reason:      a.Reason,
		Changes:     ComputePunchPatch(a),
	}
}
