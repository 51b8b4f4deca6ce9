package recordstore

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	List(ctx context.Context, table string, q ListQuery) (ListResult, error)
	Get(ctx context.Context, table, id string) (Record, error)
	Create(ctx context.Context, table string, fields map[string]any) (Record, error)
	Update(ctx context.Context, table, id string, fields map[string]any) (Record, error)
	Delete(ctx context.Context, table, id string) error
}

const (
	DefaultPageSize   = 2000
	DefaultMaxRecords = 10000
)

// Pager walks every page of a list query. Logger defaults to zap.L().
type Pager struct {
	PageSize   int
	MaxRecords int
	Logger     *zap.Logger
}

// ListAll follows hasMore until the store runs out or MaxRecords is reached.
// The offset advances by the records actually returned, so a store that caps
// pages below PageSize is still read in full. Any page error aborts the walk.
func (p Pager) ListAll(ctx context.Context, s Store, table string, q ListQuery) ([]Record, error) {
	pageSize := p.PageSize
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}
	maxRecords := p.MaxRecords
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}

	var out []Record
	offset := q.Offset
	for {
		page := q
		page.Limit = pageSize
		page.Offset = offset

		res, err := s.List(ctx, table, page)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Records...)
		if !res.HasMore || len(res.Records) == 0 {
			break
		}
		if len(out) >= maxRecords {
			p.logger().Warn("record list truncated at max records",
				zap.String("table", table),
				zap.Int("max_records", maxRecords),
				zap.Int("offset", offset),
			)
			break
		}
		offset += len(res.Records)
	}

	if len(out) > maxRecords {
		out = out[:maxRecords]
	}
	return out, nil
}

func (p Pager) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.L().Named("recordstore.pager")
}
