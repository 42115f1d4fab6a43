package client

import (
	"strings"
	"time"
)

// InlineField names the single field an inline edit targets.
type InlineField string

const (
	InlineText    InlineField = "text"
	InlineDueDate InlineField = "dueDate"
)

// EditDraft is the transient state of a full-form edit.
type EditDraft struct {
	ID       string
	Text     string
	Priority string
	DueDate  string
}

// InlineDraft is the transient state of a single-field inline edit.
type InlineDraft struct {
	ID    string
	Field InlineField
	Value string
}

// State is the dashboard's state container. It holds the in-memory task
// list plus the per-concern UI state (filter/sort, edit drafts, calendar
// selection) and mutates only through its action methods. It never talks
// to the network: commits hand back the patch to submit, and the caller
// feeds the server's response into ApplyUpdated.
type State struct {
	Tasks    []Task
	Filter   Filter
	SortMode SortMode

	Edit   *EditDraft
	Inline *InlineDraft

	CalendarMonth time.Time // first day of the displayed month
	SelectedDate  string    // YYYY-MM-DD
}

// NewState returns a State showing all tasks with the current month
// displayed and today selected.
func NewState(now time.Time) *State {
	return &State{
		Filter:        FilterAll,
		SortMode:      SortNone,
		CalendarMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		SelectedDate:  midnight(now).Format(dueDateLayout),
	}
}

// SetTasks replaces the whole list, normally from the initial fetch.
func (s *State) SetTasks(tasks []Task) {
	s.Tasks = append([]Task(nil), tasks...)
}

// Append adds a server-created task to the end of the list.
func (s *State) Append(t Task) {
	s.Tasks = append(s.Tasks, t)
}

// ApplyUpdated replaces the record matching the server response.
func (s *State) ApplyUpdated(t Task) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == t.ID {
			s.Tasks[i] = t
			return
		}
	}
}

// Remove drops the task with the given id.
func (s *State) Remove(id string) {
	out := s.Tasks[:0]
	for _, t := range s.Tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	s.Tasks = out
}

func (s *State) SetFilter(f Filter)     { s.Filter = f }
func (s *State) SetSortMode(m SortMode) { s.SortMode = m }

// Visible derives the list presentation: filter, then sort.
func (s *State) Visible() []Task {
	return SortTasks(Filtered(s.Tasks, s.Filter), s.SortMode)
}

// StartEdit opens the full-form edit for a task, seeding the draft from
// the current record.
func (s *State) StartEdit(id string) bool {
	for _, t := range s.Tasks {
		if t.ID == id {
			priority := t.Priority
			if priority == "" {
				priority = "medium"
			}
			s.Edit = &EditDraft{ID: id, Text: t.Text, Priority: priority, DueDate: t.DueDate}
			return true
		}
	}
	return false
}

func (s *State) CancelEdit() {
	s.Edit = nil
}

// CommitEdit closes the draft and returns the update to submit. A draft
// whose text trims empty reverts without producing a patch.
func (s *State) CommitEdit() (id string, patch TaskPatch, ok bool) {
	draft := s.Edit
	if draft == nil {
		return "", TaskPatch{}, false
	}
	s.Edit = nil

	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return "", TaskPatch{}, false
	}
	return draft.ID, TaskPatch{
		Text:     &text,
		Priority: &draft.Priority,
		DueDate:  &draft.DueDate,
	}, true
}

// StartInlineEdit opens a single-field edit seeded from the record.
func (s *State) StartInlineEdit(id string, field InlineField) bool {
	for _, t := range s.Tasks {
		if t.ID == id {
			value := t.DueDate
			if field == InlineText {
				value = t.Text
			}
			s.Inline = &InlineDraft{ID: id, Field: field, Value: value}
			return true
		}
	}
	return false
}

func (s *State) CancelInlineEdit() {
	s.Inline = nil
}

// CommitInlineEdit closes the inline draft and returns the single-field
// update to submit. An empty text value reverts; an empty due date is a
// real update that clears the date.
func (s *State) CommitInlineEdit() (id string, patch TaskPatch, ok bool) {
	draft := s.Inline
	if draft == nil {
		return "", TaskPatch{}, false
	}
	s.Inline = nil

	switch draft.Field {
	case InlineText:
		text := strings.TrimSpace(draft.Value)
		if text == "" {
			return "", TaskPatch{}, false
		}
		return draft.ID, TaskPatch{Text: &text}, true
	case InlineDueDate:
		due := draft.Value
		return draft.ID, TaskPatch{DueDate: &due}, true
	}
	return "", TaskPatch{}, false
}

// PrevMonth moves the calendar back one month.
func (s *State) PrevMonth() {
	s.CalendarMonth = s.CalendarMonth.AddDate(0, -1, 0)
}

// NextMonth moves the calendar forward one month.
func (s *State) NextMonth() {
	s.CalendarMonth = s.CalendarMonth.AddDate(0, 1, 0)
}

// SelectDate picks a calendar day; the task list filtered to that day
// comes from TasksOn.
func (s *State) SelectDate(date string) {
	s.SelectedDate = date
}

// Grid derives the calendar cells for the displayed month.
func (s *State) Grid() []*DayCell {
	return MonthGrid(s.Tasks, s.CalendarMonth.Year(), s.CalendarMonth.Month())
}

