package alteration

import (
	"sort"

	"go-timeconsole/internal/punch"
)

// PunchPatch is the sparse set of punch fields an approval writes, keyed by
// punch field name.
type PunchPatch map[string]any

func (p PunchPatch) IsEmpty() bool { return len(p) == 0 }

// FieldNames lists the patched fields in a stable order.
func (p PunchPatch) FieldNames() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ComputePunchPatch applies the per-field inclusion rules:
//   - punch in, punch out and memo are written only when set to a non-empty value
//   - projects are replaced whenever the key is present; null or empty clears them
//   - the punch-in timezone is replaced whenever the key is present
//   - the punch-out timezone is written only alongside a qualifying punch out
func ComputePunchPatch(a Alteration) PunchPatch {
	patch := PunchPatch{}

	if a.NewPunchInTime.Set() && a.NewPunchInTime.Value != "" {
		patch[punch.FieldPunchIn.Name] = a.NewPunchInTime.Value
	}

	outQualifies := a.NewPunchOutTime.Set() && a.NewPunchOutTime.Value != ""
	if outQualifies {
		patch[punch.FieldPunchOut.Name] = a.NewPunchOutTime.Value
	}

	if a.NewMemo.Set() && a.NewMemo.Value != "" {
		patch[punch.FieldMemo.Name] = a.NewMemo.Value
	}

	if a.NewProjectIDs.Present {
		projects := a.NewProjectIDs.Value
		if projects == nil {
			projects = []string{}
		}
		patch[punch.FieldProjects.Name] = projects
	}

	if a.NewTimezoneRef.Present {
		patch[punch.FieldTimezone.Name] = refList(a.NewTimezoneRef)
	}

	if a.NewPunchOutTimezoneRef.Present && outQualifies {
		patch[punch.FieldPunchOutTimezone.Name] = refList(a.NewPunchOutTimezoneRef)
	}

	return patch
}

func refList(o Optional[string]) []string {
	if !o.Set() || o.Value == "" {
		return []string{}
	}
	return []string{o.Value}
}
