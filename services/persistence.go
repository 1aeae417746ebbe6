package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MarshalDocument serializes a document for saving, stamping savedAt.
func MarshalDocument(doc Document, now time.Time) ([]byte, error) {
	out := doc.Clone()
	out.SavedAt = now.UTC().Format(time.RFC3339)
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	if out.ManualOverrides == nil {
		out.ManualOverrides = Overrides{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// legacyRates covers files written before the rate table split the time-charge
// rate by task type.
type legacyRates struct {
	TimeChargeRate *float64 `json:"timeChargeRate"`
}

// UnmarshalDocument parses a saved document. Absent top-level keys fall back to
// the blank-document defaults; the whole load fails if any part is invalid.
func UnmarshalDocument(data []byte, now time.Time) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) < 2 {
		return Document{}, ErrEmptyFile
	}
	if !json.Valid(trimmed) {
		var probe any
		err := json.Unmarshal(trimmed, &probe)
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if trimmed[0] != '{' {
		return Document{}, ErrNotObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	doc := Document{
		QuotationDetails: QuotationDetails{Date: now.Format(DateLayout)},
		Tasks:            DefaultTasks(),
		BaseRates:        DefaultRateTable(),
		Signatures:       DefaultSignatures(),
		ManualOverrides:  Overrides{},
	}

	fields := []struct {
		key  string
		dest any
	}{
		{"companyInfo", &doc.CompanyInfo},
		{"clientInfo", &doc.ClientInfo},
		{"quotationDetails", &doc.QuotationDetails},
		{"signatures", &doc.Signatures},
		{"manualOverrides", &doc.ManualOverrides},
		{"savedAt", &doc.SavedAt},
	}
	for _, f := range fields {
		if err := decodeKey(raw, f.key, f.dest); err != nil {
			return Document{}, err
		}
	}

	if msg, ok := present(raw, "baseRates"); ok {
		rates, err := decodeRates(msg)
		if err != nil {
			return Document{}, err
		}
		doc.BaseRates = rates
	}

	if msg, ok := present(raw, "tasks"); ok {
		var tasks []Task
		if err := json.Unmarshal(msg, &tasks); err != nil {
			return Document{}, fmt.Errorf("%w: tasks: %v", ErrInvalidJSON, err)
		}
		tasks, err := normalizeTasks(tasks)
		if err != nil {
			return Document{}, err
		}
		doc.Tasks = tasks
	}

	if doc.ManualOverrides == nil {
		doc.ManualOverrides = Overrides{}
	}
	for id, o := range doc.ManualOverrides {
		if !hasTask(doc.Tasks, id) {
			delete(doc.ManualOverrides, id)
			continue
		}
		if err := o.Validate(); err != nil {
			return Document{}, fmt.Errorf("manualOverrides %s: %w", id, err)
		}
	}
	return doc, nil
}

func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	msg, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return nil, false
	}
	return msg, true
}

func decodeKey(raw map[string]json.RawMessage, key string, dest any) error {
	msg, ok := present(raw, key)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(msg, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidJSON, key, err)
	}
	return nil
}

func decodeRates(msg json.RawMessage) (RateTable, error) {
	var rates RateTable
	if err := json.Unmarshal(msg, &rates); err != nil {
		return RateTable{}, fmt.Errorf("%w: baseRates: %v", ErrInvalidJSON, err)
	}
	var legacy legacyRates
	if err := json.Unmarshal(msg, &legacy); err == nil && legacy.TimeChargeRate != nil {
		if rates.TimeChargeRate2D == 0 {
			rates.TimeChargeRate2D = *legacy.TimeChargeRate
		}
		if rates.TimeChargeRate3D == 0 {
			rates.TimeChargeRate3D = *legacy.TimeChargeRate
		}
	}
	if err := rates.Validate(); err != nil {
		return RateTable{}, fmt.Errorf("baseRates: %w", err)
	}
	return rates, nil
}

// normalizeTasks derives isMainTask from parentId, fills missing ids and checks
// that every sub-task points at a main task in the same file.
func normalizeTasks(tasks []Task) ([]Task, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = TaskID(uuid.NewString())
		}
		if tasks[i].ParentID != nil && *tasks[i].ParentID == "" {
			tasks[i].ParentID = nil
		}
		tasks[i].IsMainTask = tasks[i].ParentID == nil
		if tasks[i].Type == "" {
			tasks[i].Type = TaskType3D
		}
	}

	mains := make(map[TaskID]bool, len(tasks))
	for _, t := range tasks {
		if t.IsMainTask {
			mains[t.ID] = true
		}
	}
	for _, t := range tasks {
		if t.ParentID != nil && !mains[*t.ParentID] {
			return nil, fmt.Errorf("task %s: %w (%s)", t.ID, ErrOrphanSubTask, *t.ParentID)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	return tasks, nil
}

func hasTask(tasks []Task, id TaskID) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
