// Package timezone resolves punch timezone references for display. Nothing
// here feeds duration math.
package timezone

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"go-timeconsole/internal/recordstore"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Zone is a resolved reference. The zero value means unknown.
type Zone struct {
	CanonicalZone string `json:"canonical_zone,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
}

func (z Zone) Known() bool {
	return z.CanonicalZone != "" || z.DisplayName != ""
}

// Location returns the tz database location, or UTC when the zone is
// unknown or not loadable.
func (z Zone) Location() *time.Location {
	if z.CanonicalZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(z.CanonicalZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

//go:generate mockgen -source=timezone.go -destination=mock/timezone_mock.go -package=mock
type Lookup interface {
	LookupZone(ctx context.Context, ref string) (Zone, error)
}

var (
	FieldCanonical = recordstore.F("timezone", "canonical_zone", "Timezone", "iana_name")
	FieldDisplay   = recordstore.F("name", "Name", "display_name")
)

type storeLookup struct {
	store recordstore.Store
	table string
}

// NewStoreLookup resolves refs against the timezones table. Refs that are
// already tz database names short-circuit without a store call.
func NewStoreLookup(store recordstore.Store, table string) Lookup {
	return &storeLookup{store: store, table: table}
}

func (l *storeLookup) LookupZone(ctx context.Context, ref string) (Zone, error) {
	if isCanonical(ref) {
		return Zone{CanonicalZone: ref, DisplayName: ref}, nil
	}
	if l.table == "" {
		return Zone{}, nil
	}
	rec, err := l.store.Get(ctx, l.table, ref)
	if errors.Is(err, recordstore.ErrRecordNotFound) {
		return Zone{}, nil
	}
	if err != nil {
		return Zone{}, err
	}
	return Zone{
		CanonicalZone: rec.Text(FieldCanonical),
		DisplayName:   rec.Text(FieldDisplay),
	}, nil
}

func isCanonical(ref string) bool {
	if ref == "UTC" {
		return true
	}
	if !strings.Contains(ref, "/") {
		return false
	}
	_, err := time.LoadLocation(ref)
	return err == nil
}

// Resolver memoizes lookups for the lifetime of one request. Create a new one
// per request; concurrent use within that request is safe.
type Resolver struct {
	lookup Lookup
	logger *zap.Logger

	mu   sync.Mutex
	memo map[string]Zone
	sf   singleflight.Group
}

func NewResolver(lookup Lookup, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("timezone.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timezone.resolver")
	}
	return &Resolver{lookup: lookup, logger: l, memo: make(map[string]Zone)}
}

// Resolve never fails: misses and lookup errors yield the zero Zone.
func (r *Resolver) Resolve(ctx context.Context, ref string) Zone {
	ref = strings.TrimSpace(ref)
	if ref == "" || r == nil || r.lookup == nil {
		return Zone{}
	}

	r.mu.Lock()
	if z, ok := r.memo[ref]; ok {
		r.mu.Unlock()
		return z
	}
	r.mu.Unlock()

	v, _, _ := r.sf.Do(ref, func() (any, error) {
		z, err := r.lookup.LookupZone(ctx, ref)
		if err != nil {
			r.logger.Warn("timezone lookup failed", zap.String("timezone_ref", ref), zap.Error(err))
			z = Zone{}
		}
		r.mu.Lock()
		r.memo[ref] = z
		r.mu.Unlock()
		return z, nil
	})
	return v.(Zone)
}
