package employee

import (
	"go-timeconsole/internal/recordstore"
)

const UnknownName = "Unknown"

var (
	FieldName       = recordstore.F("Name", "name")
	FieldEmail      = recordstore.F("email", "Email")
	FieldDepartment = recordstore.F("department_id", "Department")
	FieldActive     = recordstore.F("is_active", "Is Active")
)

type Employee struct {
	ID           string
	Name         string
	Email        string
	DepartmentID string
}

// FromRecord resolves the display name through nameField (the structured
// name column, optional), then Name, name and email, otherwise Unknown.
func FromRecord(r recordstore.Record, nameField string) Employee {
	return Employee{
		ID:           r.ID,
		Name:         DisplayName(r, nameField),
		Email:        r.Text(FieldEmail),
		DepartmentID: r.Ref(FieldDepartment),
	}
}

func DisplayName(r recordstore.Record, nameField string) string {
	if nameField != "" {
		if n := r.Text(recordstore.F(nameField)); n != "" {
			return n
		}
	}
	if n := r.Text(FieldName); n != "" {
		return n
	}
	if e := r.Text(FieldEmail); e != "" {
		return e
	}
	return UnknownName
}
