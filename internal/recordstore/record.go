// Package recordstore talks to the external tables API that owns every punch,
// alteration, time card and pay period record.
package recordstore

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned when a record id does not resolve.
var ErrRecordNotFound = errors.New("record not found")

// Record is the store's only shape: an opaque id plus named fields.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Condition is a single field predicate. Empty members are not sent.
type Condition struct {
	Eq  any   `json:"eq,omitempty"`
	In  []any `json:"in,omitempty"`
	Gte any   `json:"gte,omitempty"`
	Lte any   `json:"lte,omitempty"`
}

// RecordIDFilter filters on the record id rather than a field.
const RecordIDFilter = "id"

// Filters are ANDed together by the store.
type Filters map[string]Condition

func Eq(v any) Condition { return Condition{Eq: v} }

func In[T any](values ...T) Condition {
	in := make([]any, len(values))
	for i, v := range values {
		in[i] = v
	}
	return Condition{In: in}
}

func Between(gte, lte any) Condition { return Condition{Gte: gte, Lte: lte} }

type SortField struct {
	FieldID   string `json:"fieldId"`
	Direction string `json:"direction"`
}

type ListQuery struct {
	Filters Filters
	Sort    []SortField
	Limit   int
	Offset  int
}

type ListResult struct {
	Records []Record `json:"records"`
	HasMore bool     `json:"hasMore"`
}

// StatusError is a non-2xx answer from the store.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recordstore: unexpected status %d: %s", e.StatusCode, e.Body)
}
