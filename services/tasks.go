package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// MaxMainTasks is the number of main tasks one document can hold.
const MaxMainTasks = 27

// TaskID identifies a task. Older files stored numeric ids; they are read
// back as their decimal string.
type TaskID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if n, ok := raw.(json.Number); ok {
		*id = TaskID(n.String())
		return nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(s)
	return nil
}

// Task is one row of the engineering tasks table.
type Task struct {
	ID              TaskID  `json:"id"`
	IsMainTask      bool    `json:"isMainTask"`
	ParentID        *TaskID `json:"parentId"`
	Description     string  `json:"description"`
	ReferenceNumber string  `json:"referenceNumber"`
	Type            string  `json:"type"`
	Hours           float64 `json:"hours"`
	Minutes         float64 `json:"minutes"`
	OvertimeHours   float64 `json:"overtimeHours"`
	SoftwareUnits   float64 `json:"softwareUnits"`
}

// Editable task field names (JSON keys).
const (
	FieldDescription     = "description"
	FieldReferenceNumber = "referenceNumber"
	FieldType            = "type"
	FieldHours           = "hours"
	FieldMinutes         = "minutes"
	FieldOvertimeHours   = "overtimeHours"
	FieldSoftwareUnits   = "softwareUnits"
)

// Validate checks that the numeric inputs are non-negative.
func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Hours, validation.Min(0.0)),
		validation.Field(&t.Minutes, validation.Min(0.0)),
		validation.Field(&t.OvertimeHours, validation.Min(0.0)),
		validation.Field(&t.SoftwareUnits, validation.Min(0.0)),
	)
}

// TotalHours is hours plus minutes expressed in hours.
func (t Task) TotalHours() float64 {
	return t.Hours + t.Minutes/60
}

// IsSubTaskOf reports whether t belongs to the given main task.
func (t Task) IsSubTaskOf(parentID TaskID) bool {
	return t.ParentID != nil && *t.ParentID == parentID
}

// newTask returns a blank task with a fresh id.
func newTask(isMain bool, parentID *TaskID) Task {
	return Task{
		ID:         TaskID(uuid.NewString()),
		IsMainTask: isMain,
		ParentID:   parentID,
		Type:       TaskType3D,
	}
}

// TaskList is the ordered task collection. Main and sub tasks share one flat
// slice; sub-tasks sit after their parent.
type TaskList struct {
	tasks []Task
}

// NewTaskList wraps an existing slice of tasks. The slice is copied.
func NewTaskList(tasks []Task) *TaskList {
	return &TaskList{tasks: cloneTasks(tasks)}
}

// Tasks returns a copy of the tasks in display order.
func (l *TaskList) Tasks() []Task {
	return cloneTasks(l.tasks)
}

// Len returns the number of tasks, main and sub.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Get returns the task with the given id.
func (l *TaskList) Get(id TaskID) (Task, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i], true
}

// MainTasks returns the main tasks in order.
func (l *TaskList) MainTasks() []Task {
	return MainTasksOf(l.tasks)
}

// SubTasks returns the sub-tasks of one main task in order.
func (l *TaskList) SubTasks(parentID TaskID) []Task {
	return SubTasksOf(l.tasks, parentID)
}

// MainTaskCount returns the number of main tasks.
func (l *TaskList) MainTaskCount() int {
	n := 0
	for _, t := range l.tasks {
		if t.IsMainTask {
			n++
		}
	}
	return n
}

// CanAddMainTask reports whether another main task fits.
func (l *TaskList) CanAddMainTask() bool {
	return l.MainTaskCount() < MaxMainTasks
}

// AddMainTask appends a blank main task.
func (l *TaskList) AddMainTask() (Task, error) {
	if !l.CanAddMainTask() {
		return Task{}, fmt.Errorf("add main task: %w (%d)", ErrMainTaskLimit, MaxMainTasks)
	}
	t := newTask(true, nil)
	l.tasks = append(l.tasks, t)
	return t, nil
}

// AddSubTask inserts a blank sub-task right after the last existing sub-task of
// the parent, or right after the parent when it has none.
func (l *TaskList) AddSubTask(parentID TaskID) (Task, error) {
	if parentID == "" {
		return Task{}, fmt.Errorf("add sub-task: %w", ErrNoParentSelected)
	}
	parentIdx := l.indexOf(parentID)
	if parentIdx < 0 {
		return Task{}, fmt.Errorf("add sub-task to %s: %w", parentID, ErrTaskNotFound)
	}
	if !l.tasks[parentIdx].IsMainTask {
		return Task{}, fmt.Errorf("add sub-task to %s: %w", parentID, ErrNotMainTask)
	}

	insertAt := parentIdx + 1
	for i := parentIdx + 1; i < len(l.tasks); i++ {
		if l.tasks[i].IsSubTaskOf(parentID) {
			insertAt = i + 1
		}
	}

	pid := parentID
	t := newTask(false, &pid)
	l.tasks = append(l.tasks, Task{})
	copy(l.tasks[insertAt+1:], l.tasks[insertAt:])
	l.tasks[insertAt] = t
	return t, nil
}

// RemoveTask removes one task. Removing a main task also removes its
// sub-tasks. It returns the ids that were removed.
func (l *TaskList) RemoveTask(id TaskID) ([]TaskID, error) {
	target, ok := l.Get(id)
	if !ok {
		return nil, fmt.Errorf("remove task %s: %w", id, ErrTaskNotFound)
	}

	var removed []TaskID
	kept := l.tasks[:0:0]
	for _, t := range l.tasks {
		if t.ID == id || (target.IsMainTask && t.IsSubTaskOf(id)) {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	l.tasks = kept
	return removed, nil
}

// UpdateTaskField replaces one field on one task. Numeric fields are coerced
// with CoerceNumber and must not be negative.
func (l *TaskList) UpdateTaskField(id TaskID, field string, value any) (Task, error) {
	i := l.indexOf(id)
	if i < 0 {
		return Task{}, fmt.Errorf("update task %s: %w", id, ErrTaskNotFound)
	}

	t := l.tasks[i]
	switch field {
	case FieldDescription:
		t.Description = CoerceString(value)
	case FieldReferenceNumber:
		t.ReferenceNumber = CoerceString(value)
	case FieldType:
		t.Type = CoerceString(value)
	case FieldHours:
		t.Hours = CoerceNumber(value)
	case FieldMinutes:
		t.Minutes = CoerceNumber(value)
	case FieldOvertimeHours:
		t.OvertimeHours = CoerceNumber(value)
	case FieldSoftwareUnits:
		t.SoftwareUnits = CoerceNumber(value)
	case "id", "isMainTask", "parentId":
		return Task{}, fmt.Errorf("update task %s field %q: %w", id, field, ErrReadOnlyField)
	default:
		return Task{}, fmt.Errorf("update task %s field %q: %w", id, field, ErrUnknownField)
	}

	if err := t.Validate(); err != nil {
		return Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	l.tasks[i] = t
	return t, nil
}

// RowNumber returns the display number of a task: main tasks count 1..N among
// main tasks, sub-tasks count 1..M among their siblings.
func (l *TaskList) RowNumber(id TaskID) (int, bool) {
	target, ok := l.Get(id)
	if !ok {
		return 0, false
	}
	n := 0
	for _, t := range l.tasks {
		if target.IsMainTask {
			if t.IsMainTask {
				n++
			}
		} else if target.ParentID != nil && t.IsSubTaskOf(*target.ParentID) {
			n++
		}
		if t.ID == id {
			return n, true
		}
	}
	return 0, false
}

func (l *TaskList) indexOf(id TaskID) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// MainTasksOf filters the main tasks out of a flat task slice.
func MainTasksOf(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if t.IsMainTask {
			out = append(out, t)
		}
	}
	return out
}

// SubTasksOf returns the sub-tasks of one main task from a flat task slice.
func SubTasksOf(tasks []Task, parentID TaskID) []Task {
	var out []Task
	for _, t := range tasks {
		if t.IsSubTaskOf(parentID) {
			out = append(out, t)
		}
	}
	return out
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.ParentID != nil {
			pid := *t.ParentID
			t.ParentID = &pid
		}
		out[i] = t
	}
	return out
}
