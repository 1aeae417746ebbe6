// Package services provides pricing, layout and export functions for quotations.
package services

// Breakdown is the priced result for one task.
type Breakdown struct {
	TaskID TaskID `json:"taskId"`

	AggregatedHours         float64 `json:"aggregatedHours"`
	AggregatedOvertimeHours float64 `json:"aggregatedOvertimeHours"`
	AggregatedSoftwareUnits float64 `json:"aggregatedSoftwareUnits"`
	Rate                    float64 `json:"rate"`

	BasicLabor float64 `json:"basicLabor"`
	Overtime   float64 `json:"overtime"`
	Software   float64 `json:"software"`
	Overhead   float64 `json:"overhead"`
	Total      float64 `json:"total"`

	Overridden bool `json:"overridden"`
}

// Subtotal is the sum of the three cost components, before overhead.
func (b Breakdown) Subtotal() float64 {
	return b.BasicLabor + b.Overtime + b.Software
}

// LinePrice is what the printed table shows for a task: its total without the
// overhead share, which is printed on its own line.
func (b Breakdown) LinePrice() float64 {
	return b.Total - b.Overhead
}

// CalcOverhead applies the overhead percentage to a subtotal.
func CalcOverhead(subtotal, overheadPercentage float64) float64 {
	return subtotal * overheadPercentage / 100
}

// PriceMainTask prices a main task together with its sub-tasks. Hours,
// overtime and software units of the sub-tasks roll up into the main task and
// are charged at the main task's type rate.
func PriceMainTask(main Task, subs []Task, rates RateTable, override *ManualOverride) Breakdown {
	hours := main.TotalHours()
	overtimeHours := main.OvertimeHours
	softwareUnits := main.SoftwareUnits
	for _, s := range subs {
		hours += s.TotalHours()
		overtimeHours += s.OvertimeHours
		softwareUnits += s.SoftwareUnits
	}

	b := priceInputs(hours, overtimeHours, softwareUnits, rates.RateForType(main.Type), rates)
	b.TaskID = main.ID
	return ApplyOverride(b, override, rates.OverheadPercentage)
}

// PriceSubTask prices a sub-task on its own inputs and its own type. Sub-tasks
// are not billed separately; this is used for per-row detail only.
func PriceSubTask(sub Task, rates RateTable) Breakdown {
	b := priceInputs(sub.TotalHours(), sub.OvertimeHours, sub.SoftwareUnits, rates.RateForType(sub.Type), rates)
	b.TaskID = sub.ID
	return b
}

func priceInputs(hours, overtimeHours, softwareUnits, rate float64, rates RateTable) Breakdown {
	b := Breakdown{
		AggregatedHours:         hours,
		AggregatedOvertimeHours: overtimeHours,
		AggregatedSoftwareUnits: softwareUnits,
		Rate:                    rate,
		BasicLabor:              hours * rate,
		Overtime:                overtimeHours * rates.OvertimeRate,
		Software:                softwareUnits * rates.SoftwareRate,
	}
	b.Overhead = CalcOverhead(b.Subtotal(), rates.OverheadPercentage)
	b.Total = b.Subtotal() + b.Overhead
	return b
}

// ApplyOverride replaces calculated fields with manual ones. Overhead follows
// the overridden components unless it is pinned itself; a total override wins
// outright.
func ApplyOverride(b Breakdown, o *ManualOverride, overheadPercentage float64) Breakdown {
	if o == nil || o.IsEmpty() {
		return b
	}
	b.Overridden = true

	if o.BasicLabor != nil {
		b.BasicLabor = *o.BasicLabor
	}
	if o.Overtime != nil {
		b.Overtime = *o.Overtime
	}
	if o.Software != nil {
		b.Software = *o.Software
	}

	if o.Overhead != nil {
		b.Overhead = *o.Overhead
	} else if o.HasComponent() {
		b.Overhead = CalcOverhead(b.Subtotal(), overheadPercentage)
	}

	b.Total = b.Subtotal() + b.Overhead
	if o.Total != nil {
		b.Total = *o.Total
	}
	return b
}

// DocumentTotals holds the priced main tasks and the aggregate figures.
type DocumentTotals struct {
	Lines         []Breakdown `json:"lines"`
	Subtotal      float64     `json:"subtotal"`
	OverheadTotal float64     `json:"overheadTotal"`
	GrandTotal    float64     `json:"grandTotal"`
}

// CalcDocumentTotals prices every main task. The grand total is the sum of the
// main-task totals; sub-tasks only count through their parent.
func CalcDocumentTotals(tasks []Task, rates RateTable, overrides Overrides) DocumentTotals {
	var totals DocumentTotals
	for _, main := range MainTasksOf(tasks) {
		b := PriceMainTask(main, SubTasksOf(tasks, main.ID), rates, overrides.Lookup(main.ID))
		totals.Lines = append(totals.Lines, b)
		totals.Subtotal += b.LinePrice()
		totals.OverheadTotal += b.Overhead
		totals.GrandTotal += b.Total
	}
	return totals
}

// Line returns the breakdown for one main task.
func (d DocumentTotals) Line(id TaskID) (Breakdown, bool) {
	for _, b := range d.Lines {
		if b.TaskID == id {
			return b, true
		}
	}
	return Breakdown{}, false
}
