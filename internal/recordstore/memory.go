package recordstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process Store for tests and local development. It applies
// the same filter operators as the remote store. Date-only bounds compare
// against the date part of datetime values, so lte "2024-03-15" includes
// the whole day.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]Record
	seq    int

	// Fail, when set, is consulted before every call and may inject an error.
	Fail func(op, table, id string) error
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string][]Record)}
}

// Seed appends records to a table, keeping insertion order.
func (m *Memory) Seed(table string, records ...Record) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.tables[table] = append(m.tables[table], cloneRecord(r))
	}
	return m
}

func (m *Memory) List(_ context.Context, table string, q ListQuery) (ListResult, error) {
	if err := m.fail("list", table, ""); err != nil {
		return ListResult{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]Record, 0)
	for _, r := range m.tables[table] {
		if matchAll(r, q.Filters) {
			matched = append(matched, cloneRecord(r))
		}
	}
	if len(q.Sort) > 0 {
		sortRecords(matched, q.Sort)
	}

	if q.Offset >= len(matched) {
		return ListResult{Records: []Record{}}, nil
	}
	matched = matched[q.Offset:]
	hasMore := false
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
		hasMore = true
	}
	return ListResult{Records: matched, HasMore: hasMore}, nil
}

func (m *Memory) Get(_ context.Context, table, id string) (Record, error) {
	if err := m.fail("get", table, id); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.tables[table] {
		if r.ID == id {
			return cloneRecord(r), nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (m *Memory) Create(_ context.Context, table string, fields map[string]any) (Record, error) {
	if err := m.fail("create", table, ""); err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	r := cloneRecord(Record{ID: fmt.Sprintf("rec%06d", m.seq), Fields: fields})
	m.tables[table] = append(m.tables[table], r)
	return cloneRecord(r), nil
}

func (m *Memory) Update(_ context.Context, table, id string, fields map[string]any) (Record, error) {
	if err := m.fail("update", table, id); err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.tables[table] {
		if r.ID != id {
			continue
		}
		if r.Fields == nil {
			r.Fields = make(map[string]any, len(fields))
		}
		for k, v := range fields {
			r.Fields[k] = v
		}
		m.tables[table][i] = r
		return cloneRecord(r), nil
	}
	return Record{}, ErrRecordNotFound
}

func (m *Memory) Delete(_ context.Context, table, id string) error {
	if err := m.fail("delete", table, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tables[table]
	for i, r := range rows {
		if r.ID == id {
			m.tables[table] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

func (m *Memory) fail(op, table, id string) error {
	if m.Fail == nil {
		return nil
	}
	return m.Fail(op, table, id)
}

func cloneRecord(r Record) Record {
	out := Record{ID: r.ID, Fields: make(map[string]any, len(r.Fields))}
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

func matchAll(r Record, filters Filters) bool {
	for field, cond := range filters {
		v := r.Fields[field]
		if field == RecordIDFilter {
			v = r.ID
		}
		if !matchCondition(v, cond) {
			return false
		}
	}
	return true
}

func matchCondition(v any, c Condition) bool {
	values := flatten(v)
	if c.Eq != nil && !containsText(values, toText(c.Eq)) {
		return false
	}
	if len(c.In) > 0 {
		hit := false
		for _, want := range c.In {
			if containsText(values, toText(want)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if c.Gte != nil {
		if len(values) == 0 || compareBound(values[0], toText(c.Gte)) < 0 {
			return false
		}
	}
	if c.Lte != nil {
		if len(values) == 0 || compareBound(values[0], toText(c.Lte)) > 0 {
			return false
		}
	}
	return true
}

func flatten(v any) []string {
	switch t := v.(type) {
	case []any, []string:
		return toRefs(t)
	default:
		if s := toText(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

func containsText(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// compareBound orders value against bound. Numeric pairs compare as numbers,
// everything else lexically, truncating value to the bound's date length
// when the bound is a bare date.
func compareBound(value, bound string) int {
	if a, ok := toNumber(value); ok {
		if b, ok := toNumber(bound); ok {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	}
	if len(bound) == len("2006-01-02") && len(value) > len(bound) && value[len(bound)] == 'T' {
		value = value[:len(bound)]
	}
	return strings.Compare(value, bound)
}

func sortRecords(records []Record, by []SortField) {
	sort.SliceStable(records, func(i, j int) bool {
		for _, s := range by {
			a := toText(records[i].Fields[s.FieldID])
			b := toText(records[j].Fields[s.FieldID])
			if a == b {
				continue
			}
			if strings.EqualFold(s.Direction, "desc") {
				return a > b
			}
			return a < b
		}
		return false
	})
}
