package department

import "go-timeconsole/internal/recordstore"

var (
	FieldName   = recordstore.F("Name", "name")
	FieldCode   = recordstore.F("code", "Code")
	FieldActive = recordstore.F("is_active", "Is Active")
)

type Department struct {
	ID     string
	Name   string
	Code   string
	Active bool
}

func FromRecord(r recordstore.Record) Department {
	d := Department{
		ID:     r.ID,
		Name:   r.Text(FieldName),
		Code:   r.Text(FieldCode),
		Active: true,
	}
	if d.Name == "" {
		d.Name = "Unknown"
	}
	if v, ok := r.Lookup(FieldActive); ok {
		if b, isBool := v.(bool); isBool {
			d.Active = b
		}
	}
	return d
}
