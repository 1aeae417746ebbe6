package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultReadTimeout bounds how long loading a document file may take.
const DefaultReadTimeout = 15 * time.Second

// Editor owns the one open document. Every user action is a method; all of them
// are safe for concurrent use.
type Editor struct {
	mu          sync.Mutex
	doc         Document
	filePath    string
	dirty       bool
	letterhead  Letterhead
	startRates  RateTable
	now         func() time.Time
	readTimeout time.Duration
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithLetterhead sets the fixed texts used for numbering and printing.
func WithLetterhead(lh Letterhead) EditorOption {
	return func(e *Editor) { e.letterhead = lh }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EditorOption {
	return func(e *Editor) { e.now = now }
}

// WithReadTimeout sets the load timeout.
func WithReadTimeout(d time.Duration) EditorOption {
	return func(e *Editor) { e.readTimeout = d }
}

// WithRates sets the rate table of blank documents.
func WithRates(r RateTable) EditorOption {
	return func(e *Editor) { e.startRates = r }
}

// NewEditor returns an editor holding a blank document.
func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{
		letterhead:  DefaultLetterhead(),
		now:         time.Now,
		readTimeout: DefaultReadTimeout,
	}
	e.startRates = DefaultRateTable()
	for _, opt := range opts {
		opt(e)
	}
	e.doc = e.blankDocument()
	return e
}

// EditorState is a consistent copy of the editor for display.
type EditorState struct {
	Document          Document       `json:"document"`
	FilePath          string         `json:"filePath"`
	HasUnsavedChanges bool           `json:"hasUnsavedChanges"`
	Totals            DocumentTotals `json:"totals"`
	MainTaskCount     int            `json:"mainTaskCount"`
	CanAddMainTask    bool           `json:"canAddMainTask"`
}

// Snapshot returns a copy of the current state.
func (e *Editor) Snapshot() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := NewTaskList(e.doc.Tasks)
	return EditorState{
		Document:          e.doc.Clone(),
		FilePath:          e.filePath,
		HasUnsavedChanges: e.dirty,
		Totals:            e.doc.Totals(),
		MainTaskCount:     list.MainTaskCount(),
		CanAddMainTask:    list.CanAddMainTask(),
	}
}

// Document returns a copy of the open document.
func (e *Editor) Document() Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

// Letterhead returns the editor's letterhead.
func (e *Editor) Letterhead() Letterhead {
	return e.letterhead
}

// UpdateCompanyInfo replaces the company block.
func (e *Editor) UpdateCompanyInfo(info CompanyInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.CompanyInfo = info
	e.dirty = true
}

// UpdateClientInfo replaces the client block.
func (e *Editor) UpdateClientInfo(info ClientInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.ClientInfo = info
	e.dirty = true
}

// UpdateQuotationDetails replaces the document numbers. Changing the date
// regenerates the quotation number for that date.
func (e *Editor) UpdateQuotationDetails(details QuotationDetails) QuotationDetails {
	e.mu.Lock()
	defer e.mu.Unlock()
	if details.Date != "" && details.Date != e.doc.QuotationDetails.Date {
		details.QuotationNo = QuotationNumberForDate(e.letterhead.QuotationPrefix, details.Date, e.now())
	}
	e.doc.QuotationDetails = details
	e.dirty = true
	return details
}

// UpdateSignatures replaces both signature blocks.
func (e *Editor) UpdateSignatures(s Signatures) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Signatures = s
	e.dirty = true
}

// AddMainTask appends a blank main task.
func (e *Editor) AddMainTask() (Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := NewTaskList(e.doc.Tasks)
	t, err := list.AddMainTask()
	if err != nil {
		return Task{}, err
	}
	e.doc.Tasks = list.Tasks()
	e.dirty = true
	return t, nil
}

// AddSubTask adds a blank sub-task under a main task.
func (e *Editor) AddSubTask(parentID TaskID) (Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := NewTaskList(e.doc.Tasks)
	t, err := list.AddSubTask(parentID)
	if err != nil {
		return Task{}, err
	}
	e.doc.Tasks = list.Tasks()
	e.dirty = true
	return t, nil
}

// RemoveTask removes a task, its sub-tasks when it is a main task, and any
// overrides recorded for them.
func (e *Editor) RemoveTask(id TaskID) ([]TaskID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := NewTaskList(e.doc.Tasks)
	removed, err := list.RemoveTask(id)
	if err != nil {
		return nil, err
	}
	e.doc.Tasks = list.Tasks()
	for _, rid := range removed {
		delete(e.doc.ManualOverrides, rid)
	}
	e.dirty = true
	return removed, nil
}

// UpdateTask sets one field of one task.
func (e *Editor) UpdateTask(id TaskID, field string, value any) (Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := NewTaskList(e.doc.Tasks)
	t, err := list.UpdateTaskField(id, field, value)
	if err != nil {
		return Task{}, err
	}
	e.doc.Tasks = list.Tasks()
	e.dirty = true
	return t, nil
}

// UpdateBaseRate sets one rate.
func (e *Editor) UpdateBaseRate(field string, value any) (RateTable, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rates, err := e.doc.BaseRates.SetField(field, value)
	if err != nil {
		return e.doc.BaseRates, err
	}
	e.doc.BaseRates = rates
	e.dirty = true
	return rates, nil
}

// SetOverride pins one pricing field of a main task to a manual value.
func (e *Editor) SetOverride(id TaskID, field string, value float64) (ManualOverride, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireMainTask(id); err != nil {
		return ManualOverride{}, err
	}
	if value < 0 {
		return ManualOverride{}, fmt.Errorf("override %s %q: %w", id, field, ErrNegativeValue)
	}
	o, err := e.doc.ManualOverrides[id].With(field, value)
	if err != nil {
		return ManualOverride{}, err
	}
	if e.doc.ManualOverrides == nil {
		e.doc.ManualOverrides = Overrides{}
	}
	e.doc.ManualOverrides[id] = o
	e.dirty = true
	return o, nil
}

// ClearOverride returns one field, or with an empty field name every field, of
// a task to its calculated value.
func (e *Editor) ClearOverride(id TaskID, field string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := NewTaskList(e.doc.Tasks).Get(id); !ok {
		return fmt.Errorf("clear override %s: %w", id, ErrTaskNotFound)
	}
	current, ok := e.doc.ManualOverrides[id]
	if !ok {
		return nil
	}
	if field == "" {
		delete(e.doc.ManualOverrides, id)
		e.dirty = true
		return nil
	}
	o, err := current.Without(field)
	if err != nil {
		return err
	}
	if o.IsEmpty() {
		delete(e.doc.ManualOverrides, id)
	} else {
		e.doc.ManualOverrides[id] = o
	}
	e.dirty = true
	return nil
}

// QuickEditTask is the editable part of one main task in a batch edit.
type QuickEditTask struct {
	ID              TaskID  `json:"id"`
	ReferenceNumber string  `json:"referenceNumber"`
	Description     string  `json:"description"`
	Type            string  `json:"type"`
	Hours           float64 `json:"hours"`
	Minutes         float64 `json:"minutes"`
	OvertimeHours   float64 `json:"overtimeHours"`
	SoftwareUnits   float64 `json:"softwareUnits"`
}

// QuickEdit is a batch edit of main tasks together with the full override set.
type QuickEdit struct {
	Tasks     []QuickEditTask `json:"tasks"`
	Overrides Overrides       `json:"overrides"`
}

// ApplyQuickEdit validates the whole batch, then applies it. Nothing changes if
// any entry is invalid. The override set replaces the current one.
func (e *Editor) ApplyQuickEdit(q QuickEdit) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tasks := cloneTasks(e.doc.Tasks)
	index := make(map[TaskID]int, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
	}

	for _, edit := range q.Tasks {
		i, ok := index[edit.ID]
		if !ok {
			return fmt.Errorf("quick edit %s: %w", edit.ID, ErrTaskNotFound)
		}
		if !tasks[i].IsMainTask {
			return fmt.Errorf("quick edit %s: %w", edit.ID, ErrNotMainTask)
		}
		t := tasks[i]
		t.ReferenceNumber = edit.ReferenceNumber
		t.Description = edit.Description
		t.Type = edit.Type
		if t.Type == "" {
			t.Type = TaskType3D
		}
		t.Hours = edit.Hours
		t.Minutes = edit.Minutes
		t.OvertimeHours = edit.OvertimeHours
		t.SoftwareUnits = edit.SoftwareUnits
		if err := t.Validate(); err != nil {
			return fmt.Errorf("quick edit %s: %w", edit.ID, err)
		}
		tasks[i] = t
	}

	overrides := Overrides{}
	for id, o := range q.Overrides {
		i, ok := index[id]
		if !ok {
			return fmt.Errorf("quick edit override %s: %w", id, ErrTaskNotFound)
		}
		if !tasks[i].IsMainTask {
			return fmt.Errorf("quick edit override %s: %w", id, ErrNotMainTask)
		}
		if err := o.Validate(); err != nil {
			return fmt.Errorf("quick edit override %s: %w", id, err)
		}
		if o.IsEmpty() {
			continue
		}
		overrides[id] = o.Clone()
	}

	e.doc.Tasks = tasks
	e.doc.ManualOverrides = overrides
	e.dirty = true
	return nil
}

// Reset replaces the open document with a blank one.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = e.blankDocument()
	e.filePath = ""
	e.dirty = false
}

// Save writes the document to path, or to the current file when path is
// empty. The document is marked saved only after the write succeeds.
func (e *Editor) Save(path string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if path == "" {
		path = e.filePath
	}
	if path == "" {
		return "", ErrNoFilePath
	}

	now := e.now()
	data, err := MarshalDocument(e.doc, now)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	e.doc.SavedAt = now.UTC().Format(time.RFC3339)
	e.filePath = path
	e.dirty = false
	return path, nil
}

// Load replaces the open document with the file at path. On any error the
// open document is left untouched.
func (e *Editor) Load(ctx context.Context, path string) error {
	if path == "" {
		return ErrNoFilePath
	}

	ctx, cancel := context.WithTimeout(ctx, e.readTimeout)
	defer cancel()

	data, err := readFileContext(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	doc, err := UnmarshalDocument(data, e.now())
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	e.filePath = path
	e.dirty = false
	return nil
}

// Totals prices the open document.
func (e *Editor) Totals() DocumentTotals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Totals()
}

// Layout builds the printed layout of the open document.
func (e *Editor) Layout(mode PrintMode) PrintLayout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BuildLayout(e.doc, mode, e.letterhead)
}

// PrintRequest returns the default print request for the open document.
func (e *Editor) PrintRequest(mode PrintMode) PrintRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DefaultPrintRequest(e.doc.QuotationDetails, mode, e.letterhead)
}

func (e *Editor) blankDocument() Document {
	doc := NewDocument(e.letterhead.QuotationPrefix, e.now())
	doc.BaseRates = e.startRates
	return doc
}

func (e *Editor) requireMainTask(id TaskID) error {
	t, ok := NewTaskList(e.doc.Tasks).Get(id)
	if !ok {
		return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	if !t.IsMainTask {
		return fmt.Errorf("task %s: %w", id, ErrNotMainTask)
	}
	return nil
}

func readFileContext(ctx context.Context, path string) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		ch <- result{data: data, err: err}
	}()

	select {
	case r := <-ch:
		return r.data, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrReadTimeout
		}
		return nil, ctx.Err()
	}
}
