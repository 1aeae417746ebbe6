package services

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Override field names.
const (
	OverrideBasicLabor = "basicLabor"
	OverrideOvertime   = "overtime"
	OverrideSoftware   = "software"
	OverrideOverhead   = "overhead"
	OverrideTotal      = "total"
)

// ManualOverride replaces calculated pricing fields of one task. A nil field
// means "use the calculated value".
type ManualOverride struct {
	BasicLabor *float64 `json:"basicLabor,omitempty"`
	Overtime   *float64 `json:"overtime,omitempty"`
	Software   *float64 `json:"software,omitempty"`
	Overhead   *float64 `json:"overhead,omitempty"`
	Total      *float64 `json:"total,omitempty"`
}

// Overrides maps task ids to their manual overrides.
type Overrides map[TaskID]ManualOverride

// IsEmpty reports whether no field is overridden.
func (o ManualOverride) IsEmpty() bool {
	return o.BasicLabor == nil && o.Overtime == nil && o.Software == nil &&
		o.Overhead == nil && o.Total == nil
}

// Validate checks that every overridden field is non-negative.
func (o ManualOverride) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.BasicLabor, validation.Min(0.0)),
		validation.Field(&o.Overtime, validation.Min(0.0)),
		validation.Field(&o.Software, validation.Min(0.0)),
		validation.Field(&o.Overhead, validation.Min(0.0)),
		validation.Field(&o.Total, validation.Min(0.0)),
	)
}

// HasComponent reports whether one of the three cost components is overridden.
func (o ManualOverride) HasComponent() bool {
	return o.BasicLabor != nil || o.Overtime != nil || o.Software != nil
}

// With returns a copy with one field set to value.
func (o ManualOverride) With(field string, value float64) (ManualOverride, error) {
	v := value
	switch field {
	case OverrideBasicLabor:
		o.BasicLabor = &v
	case OverrideOvertime:
		o.Overtime = &v
	case OverrideSoftware:
		o.Software = &v
	case OverrideOverhead:
		o.Overhead = &v
	case OverrideTotal:
		o.Total = &v
	default:
		return o, fmt.Errorf("override %q: %w", field, ErrUnknownField)
	}
	return o, nil
}

// Without returns a copy with one field reset to its calculated value.
func (o ManualOverride) Without(field string) (ManualOverride, error) {
	switch field {
	case OverrideBasicLabor:
		o.BasicLabor = nil
	case OverrideOvertime:
		o.Overtime = nil
	case OverrideSoftware:
		o.Software = nil
	case OverrideOverhead:
		o.Overhead = nil
	case OverrideTotal:
		o.Total = nil
	default:
		return o, fmt.Errorf("override %q: %w", field, ErrUnknownField)
	}
	return o, nil
}

// Clone returns a deep copy of the override.
func (o ManualOverride) Clone() ManualOverride {
	return ManualOverride{
		BasicLabor: cloneFloat(o.BasicLabor),
		Overtime:   cloneFloat(o.Overtime),
		Software:   cloneFloat(o.Software),
		Overhead:   cloneFloat(o.Overhead),
		Total:      cloneFloat(o.Total),
	}
}

// Clone returns a deep copy of the override map.
func (m Overrides) Clone() Overrides {
	out := make(Overrides, len(m))
	for id, o := range m {
		out[id] = o.Clone()
	}
	return out
}

// Lookup returns the override for a task, or nil.
func (m Overrides) Lookup(id TaskID) *ManualOverride {
	o, ok := m[id]
	if !ok {
		return nil
	}
	return &o
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
