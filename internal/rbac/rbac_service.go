package rbac

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-timeconsole/internal/domain"
	"go-timeconsole/internal/shared/cache"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const DecisionKeyPrefix = "rbac:decision:"

// DecisionKey identifies one cached permission answer.
func DecisionKey(req domain.PermissionRequest) string {
	return DecisionKeyPrefix + strings.Join([]string{
		req.PrincipalID, req.App, req.View, req.ResourceType, req.ResourceID, req.Action,
	}, ":")
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	domain.PermissionChecker
	LoadPrincipalPolicy(ctx context.Context, principalID string) error
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	cache    cache.Provider
	ttl      time.Duration
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewService answers permission checks with casbin over the principal's
// record store policies. provider caches decisions for ttl and may be nil.
func NewService(repo Repository, enforcer *casbin.Enforcer, provider cache.Provider, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		cache:    provider,
		ttl:      ttl,
		logger:   l,
	}
}

func (s *service) LoadPrincipalPolicy(ctx context.Context, principalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPrincipalPolicyUnlocked(ctx, principalID)
}

func (s *service) loadPrincipalPolicyUnlocked(ctx context.Context, principalID string) error {
	s.enforcer.ClearPolicy()

	access, err := s.repo.GetAppAccess(ctx, principalID)
	if err != nil {
		return err
	}
	for _, a := range access {
		if a.App == "" {
			continue
		}
		if _, err := s.enforcer.AddGroupingPolicy(principalID, a.App); err != nil {
			return err
		}
	}

	perms, err := s.repo.GetPermissions(ctx, principalID)
	if err != nil {
		return err
	}
	var rules [][]string
	for _, p := range perms {
		for _, act := range p.Actions {
			rules = append(rules, []string{principalID, p.App, orWildcard(p.View), policyObject(p.ResourceType, p.ResourceID), act})
		}
	}
	if len(rules) > 0 {
		if _, err := s.enforcer.AddPolicies(rules); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("principal_id", principalID),
		zap.Int("app_access", len(access)),
		zap.Int("rules", len(rules)),
	)
	return nil
}

func (s *service) CanPerform(ctx context.Context, req domain.PermissionRequest) (bool, error) {
	key := DecisionKey(req)
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, key); err == nil {
			return string(b) == "1", nil
		}
	}

	allowed, err := s.enforce(ctx, req)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("principal_id", req.PrincipalID),
			zap.String("resource_type", req.ResourceType),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	if s.cache != nil {
		v := []byte("0")
		if allowed {
			v = []byte("1")
		}
		if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
			s.logger.Warn("rbac decision cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	s.logger.Debug("rbac enforce result",
		zap.String("principal_id", req.PrincipalID),
		zap.String("app_id", req.App),
		zap.String("view_id", req.View),
		zap.String("resource_type", req.ResourceType),
		zap.String("resource_id", req.ResourceID),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) enforce(ctx context.Context, req domain.PermissionRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadPrincipalPolicyUnlocked(ctx, req.PrincipalID); err != nil {
		return false, err
	}
	return s.enforcer.Enforce(
		req.PrincipalID,
		req.App,
		req.View,
		requestObject(req.ResourceType, req.ResourceID),
		req.Action,
	)
}

func orWildcard(s string) string {
	if s == "" {
		return domain.Wildcard
	}
	return s
}

// policyObject renders type/id; a missing type matches every resource and a
// missing id every instance of the type.
func policyObject(resourceType, resourceID string) string {
	if resourceType == "" {
		return domain.Wildcard
	}
	return resourceType + "/" + orWildcard(resourceID)
}

func requestObject(resourceType, resourceID string) string {
	return resourceType + "/" + resourceID
}
