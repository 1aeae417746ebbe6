package services

import (
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Task types with their own time-charge rate. Any other type is charged at the
// 3D rate.
const (
	TaskType2D = "2D"
	TaskType3D = "3D"
)

// RateTable holds the multipliers every task calculation reads.
type RateTable struct {
	TimeChargeRate2D   float64 `json:"timeChargeRate2D"`
	TimeChargeRate3D   float64 `json:"timeChargeRate3D"`
	OTHoursMultiplier  float64 `json:"otHoursMultiplier"`
	OvertimeRate       float64 `json:"overtimeRate"`
	SoftwareRate       float64 `json:"softwareRate"`
	OverheadPercentage float64 `json:"overheadPercentage"`

	// OvertimeRatePinned is set when the user typed the overtime rate directly.
	// It stays pinned until a time-charge rate changes.
	OvertimeRatePinned bool `json:"overtimeRatePinned,omitempty"`
}

// Rate field names accepted by SetField.
const (
	RateTimeCharge2D      = "timeChargeRate2D"
	RateTimeCharge3D      = "timeChargeRate3D"
	RateOTHoursMultiplier = "otHoursMultiplier"
	RateOvertime          = "overtimeRate"
	RateSoftware          = "softwareRate"
	RateOverheadPercent   = "overheadPercentage"
)

// DefaultRateTable is the rate table of a blank document.
func DefaultRateTable() RateTable {
	return RateTable{
		OTHoursMultiplier:  1.3,
		OverheadPercentage: 20,
	}
}

// Validate checks that every rate is non-negative.
func (r RateTable) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TimeChargeRate2D, validation.Min(0.0)),
		validation.Field(&r.TimeChargeRate3D, validation.Min(0.0)),
		validation.Field(&r.OTHoursMultiplier, validation.Min(0.0)),
		validation.Field(&r.OvertimeRate, validation.Min(0.0)),
		validation.Field(&r.SoftwareRate, validation.Min(0.0)),
		validation.Field(&r.OverheadPercentage, validation.Min(0.0)),
	)
}

// RateForType returns the hourly time-charge rate for a task type.
func (r RateTable) RateForType(taskType string) float64 {
	if taskType == TaskType2D {
		return r.TimeChargeRate2D
	}
	return r.TimeChargeRate3D
}

// DerivedOvertimeRate is the overtime rate implied by the 3D time-charge rate
// and the overtime multiplier, rounded to a whole currency unit.
func (r RateTable) DerivedOvertimeRate() float64 {
	return math.Round(r.TimeChargeRate3D * r.OTHoursMultiplier)
}

// SetField returns a copy of the table with one field replaced, applying the
// overtime derivation rules. The value is coerced to a number first.
func (r RateTable) SetField(field string, value any) (RateTable, error) {
	n := CoerceNumber(value)
	next := r

	switch field {
	case RateTimeCharge2D:
		next.TimeChargeRate2D = n
		next.OvertimeRatePinned = false
		next.OvertimeRate = next.DerivedOvertimeRate()
	case RateTimeCharge3D:
		next.TimeChargeRate3D = n
		next.OvertimeRatePinned = false
		next.OvertimeRate = next.DerivedOvertimeRate()
	case RateOTHoursMultiplier:
		next.OTHoursMultiplier = n
		if !next.OvertimeRatePinned {
			next.OvertimeRate = next.DerivedOvertimeRate()
		}
	case RateOvertime:
		next.OvertimeRate = n
		next.OvertimeRatePinned = true
	case RateSoftware:
		next.SoftwareRate = n
	case RateOverheadPercent:
		next.OverheadPercentage = n
	default:
		return r, fmt.Errorf("rate %q: %w", field, ErrUnknownField)
	}

	if err := next.Validate(); err != nil {
		return r, err
	}
	return next, nil
}
