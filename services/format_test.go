package services

import "testing"

func TestFormatYen_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "¥0"},
		{"small integer", 5, "¥5"},
		{"with decimals", 42.5, "¥42.5"},
		{"thousands", 1500, "¥1,500"},
		{"millions", 1234567.5, "¥1,234,567.5"},
		{"rounds to cents", 12.3456, "¥12.35"},
		{"rounds up into thousands", 999.999, "¥1,000"},
		{"negative", -2500, "¥-2,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatYen(tt.input)
			if got != tt.expect {
				t.Errorf("FormatYen(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		name    string
		hours   float64
		minutes float64
		expect  string
	}{
		{"empty", 0, 0, ""},
		{"whole hours", 5, 0, "5h"},
		{"hours and minutes", 5, 30, "5h 30m"},
		{"minutes only", 0, 45, "0h 45m"},
		{"minutes carry", 2, 90, "3h 30m"},
		{"exact carry", 1, 60, "2h"},
		{"fractional hours", 1.5, 0, "1.5h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatHours(tt.hours, tt.minutes)
			if got != tt.expect {
				t.Errorf("FormatHours(%v, %v) = %q, want %q", tt.hours, tt.minutes, got, tt.expect)
			}
		})
	}
}

func TestFormatHoursDecimal(t *testing.T) {
	tests := []struct {
		input  float64
		expect string
	}{
		{0, "0"},
		{2.5, "2.5"},
		{1.0 / 3.0, "0.33"},
		{10, "10"},
	}
	for _, tt := range tests {
		got := FormatHoursDecimal(tt.input)
		if got != tt.expect {
			t.Errorf("FormatHoursDecimal(%v) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
