package services

import (
	"math"
	"testing"
)

func testRates() RateTable {
	return RateTable{
		TimeChargeRate2D:   2000,
		TimeChargeRate3D:   2500,
		OTHoursMultiplier:  1.3,
		OvertimeRate:       3250,
		SoftwareRate:       500,
		OverheadPercentage: 20,
	}
}

func ptr(v float64) *float64 { return &v }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalcOverhead(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		pct      float64
		expect   float64
	}{
		{"twenty percent", 10000, 20, 2000},
		{"zero percent", 10000, 0, 0},
		{"zero subtotal", 0, 20, 0},
		{"fractional", 1234.5, 12.5, 154.3125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcOverhead(tt.subtotal, tt.pct); !approx(got, tt.expect) {
				t.Errorf("CalcOverhead(%v, %v) = %v, want %v", tt.subtotal, tt.pct, got, tt.expect)
			}
		})
	}
}

func TestPriceMainTask_Formula(t *testing.T) {
	main := Task{ID: "m1", IsMainTask: true, Type: TaskType3D, Hours: 10, Minutes: 30, OvertimeHours: 2, SoftwareUnits: 3}

	b := PriceMainTask(main, nil, testRates(), nil)

	if !approx(b.AggregatedHours, 10.5) {
		t.Errorf("expected 10.5 hours, got %v", b.AggregatedHours)
	}
	if !approx(b.BasicLabor, 26250) {
		t.Errorf("expected basic labor 26250, got %v", b.BasicLabor)
	}
	if !approx(b.Overtime, 6500) {
		t.Errorf("expected overtime 6500, got %v", b.Overtime)
	}
	if !approx(b.Software, 1500) {
		t.Errorf("expected software 1500, got %v", b.Software)
	}
	if !approx(b.Overhead, 6850) {
		t.Errorf("expected overhead 6850, got %v", b.Overhead)
	}
	if !approx(b.Total, 41100) {
		t.Errorf("expected total 41100, got %v", b.Total)
	}
	if b.Overridden {
		t.Error("expected no override flag")
	}
}

func TestPriceMainTask_TypeRate(t *testing.T) {
	tests := []struct {
		taskType string
		expect   float64
	}{
		{TaskType2D, 2000},
		{TaskType3D, 2500},
		{"Custom", 2500},
		{"", 2500},
	}

	for _, tt := range tests {
		t.Run(tt.taskType, func(t *testing.T) {
			main := Task{ID: "m1", IsMainTask: true, Type: tt.taskType, Hours: 1}
			b := PriceMainTask(main, nil, testRates(), nil)
			if b.Rate != tt.expect || b.BasicLabor != tt.expect {
				t.Errorf("type %q: expected rate %v, got rate %v labor %v", tt.taskType, tt.expect, b.Rate, b.BasicLabor)
			}
		})
	}
}

func TestPriceMainTask_RollupEqualsSummedInputs(t *testing.T) {
	pid := TaskID("m1")
	main := Task{ID: "m1", IsMainTask: true, Type: TaskType2D, Hours: 2, OvertimeHours: 1}
	subs := []Task{
		{ID: "s1", ParentID: &pid, Type: TaskType3D, Hours: 3, Minutes: 15, SoftwareUnits: 2},
		{ID: "s2", ParentID: &pid, Type: TaskType3D, Hours: 1, OvertimeHours: 0.5, Minutes: 45},
	}
	rolled := PriceMainTask(main, subs, testRates(), nil)

	flat := Task{ID: "m1", IsMainTask: true, Type: TaskType2D, Hours: 7, OvertimeHours: 1.5, SoftwareUnits: 2}
	single := PriceMainTask(flat, nil, testRates(), nil)

	if !approx(rolled.Total, single.Total) {
		t.Errorf("rollup total %v differs from summed inputs total %v", rolled.Total, single.Total)
	}
	if rolled.Rate != 2000 {
		t.Errorf("expected the main task's 2D rate, got %v", rolled.Rate)
	}
}

func TestPriceSubTask_UsesOwnType(t *testing.T) {
	pid := TaskID("m1")
	sub := Task{ID: "s1", ParentID: &pid, Type: TaskType2D, Hours: 2}

	b := PriceSubTask(sub, testRates())

	if b.BasicLabor != 4000 {
		t.Errorf("expected basic labor 4000, got %v", b.BasicLabor)
	}
	if b.TaskID != "s1" {
		t.Errorf("expected task id s1, got %q", b.TaskID)
	}
}

func TestApplyOverride(t *testing.T) {
	base := priceInputs(10, 2, 3, 2500, testRates())

	tests := []struct {
		name         string
		override     *ManualOverride
		wantLabor    float64
		wantOverhead float64
		wantTotal    float64
		wantFlag     bool
	}{
		{"nil", nil, 25000, 6600, 39600, false},
		{"empty", &ManualOverride{}, 25000, 6600, 39600, false},
		{"basic labor recomputes overhead", &ManualOverride{BasicLabor: ptr(10000)}, 10000, 3600, 21600, true},
		{"overhead pinned", &ManualOverride{BasicLabor: ptr(10000), Overhead: ptr(100)}, 10000, 100, 18100, true},
		{"overhead alone", &ManualOverride{Overhead: ptr(0)}, 25000, 0, 33000, true},
		{"total wins", &ManualOverride{BasicLabor: ptr(1), Total: ptr(50000)}, 1, 1600.2, 50000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ApplyOverride(base, tt.override, 20)
			if !approx(b.BasicLabor, tt.wantLabor) {
				t.Errorf("basic labor = %v, want %v", b.BasicLabor, tt.wantLabor)
			}
			if !approx(b.Overhead, tt.wantOverhead) {
				t.Errorf("overhead = %v, want %v", b.Overhead, tt.wantOverhead)
			}
			if !approx(b.Total, tt.wantTotal) {
				t.Errorf("total = %v, want %v", b.Total, tt.wantTotal)
			}
			if b.Overridden != tt.wantFlag {
				t.Errorf("overridden = %v, want %v", b.Overridden, tt.wantFlag)
			}
		})
	}
}

func TestCalcDocumentTotals(t *testing.T) {
	pid := TaskID("m1")
	tasks := []Task{
		{ID: "m1", IsMainTask: true, Type: TaskType3D, Hours: 2},
		{ID: "s1", ParentID: &pid, Type: TaskType3D, Hours: 1},
		{ID: "m2", IsMainTask: true, Type: TaskType2D, Hours: 1},
	}
	rates := testRates()

	totals := CalcDocumentTotals(tasks, rates, Overrides{"m2": {Total: ptr(1000)}})

	if len(totals.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(totals.Lines))
	}
	// m1: 3h * 2500 = 7500, overhead 1500, total 9000
	m1, ok := totals.Line("m1")
	if !ok || !approx(m1.Total, 9000) {
		t.Errorf("expected m1 total 9000, got %+v", m1)
	}
	// m2: labor 2000, overhead 400, total pinned at 1000
	if !approx(totals.GrandTotal, 10000) {
		t.Errorf("expected grand total 10000, got %v", totals.GrandTotal)
	}
	if !approx(totals.OverheadTotal, 1900) {
		t.Errorf("expected overhead total 1900, got %v", totals.OverheadTotal)
	}
	if !approx(totals.Subtotal, totals.GrandTotal-totals.OverheadTotal) {
		t.Errorf("subtotal %v should be grand total minus overhead", totals.Subtotal)
	}
	if _, ok := totals.Line("s1"); ok {
		t.Error("sub-tasks must not have their own line")
	}
}

func TestCalcDocumentTotals_Empty(t *testing.T) {
	totals := CalcDocumentTotals(nil, testRates(), nil)
	if totals.GrandTotal != 0 || len(totals.Lines) != 0 {
		t.Errorf("expected zero totals, got %+v", totals)
	}
}
