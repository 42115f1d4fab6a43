package client

import (
	"sort"
	"time"
)

const dueDateLayout = "2006-01-02"

// Filtered returns the tasks the given filter admits, preserving order.
func Filtered(tasks []Task, filter Filter) []Task {
	if filter != FilterCompleted {
		return append([]Task(nil), tasks...)
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// SortTasks returns a sorted copy of tasks. Sorting is stable, so ties and
// dateless tasks keep their relative order.
//
//   - dueDate: ascending, tasks with no due date last
//   - priority: high before medium before low, ties alphabetical by text
//   - az: alphabetical by text
//   - none: input order
func SortTasks(tasks []Task, mode SortMode) []Task {
	out := append([]Task(nil), tasks...)

	switch mode {
	case SortDueDate:
		// ISO dates compare correctly as strings.
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			if a == "" || b == "" {
				return a != "" && b == ""
			}
			return a < b
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			ra, rb := rank(out[i].Priority), rank(out[j].Priority)
			if ra != rb {
				return ra < rb
			}
			return out[i].Text < out[j].Text
		})
	case SortAZ:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Text < out[j].Text
		})
	}

	return out
}

func rank(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return len(priorityRank)
}

// Upcoming returns the incomplete tasks whose due date falls within
// [today, today+2 days] inclusive, soonest first.
func Upcoming(tasks []Task, today time.Time) []Task {
	start := midnight(today)
	end := start.AddDate(0, 0, 2)

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := parseDueDate(t.DueDate)
		if !ok {
			continue
		}
		if due.Before(start) || due.After(end) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

// DayCell is one day of the calendar grid.
type DayCell struct {
	Day      int
	Date     string
	HasTasks bool
}

// MonthGrid builds the calendar cells for one month: leading nils pad the
// first row up to the month's starting weekday (Sunday first), then one
// cell per day flagged when any task is due exactly on it.
func MonthGrid(tasks []Task, year int, month time.Month) []*DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	cells := make([]*DayCell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, nil)
	}

	due := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.DueDate != "" {
			due[t.DueDate] = true
		}
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local).Format(dueDateLayout)
		cells = append(cells, &DayCell{
			Day:      day,
			Date:     date,
			HasTasks: due[date],
		})
	}
	return cells
}

// TasksOn returns the tasks due exactly on the given YYYY-MM-DD date.
func TasksOn(tasks []Task, date string) []Task {
	if date == "" {
		return nil
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate == date {
			out = append(out, t)
		}
	}
	return out
}

// Progress summarizes completion over the full task list.
func Progress(tasks []Task) (completed, total, percent int) {
	total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	if total > 0 {
		percent = int(float64(completed)/float64(total)*100 + 0.5)
	}
	return completed, total, percent
}

// Board groups the filtered tasks into the three priority columns.
type Board struct {
	Low    []Task
	Medium []Task
	High   []Task
}

func BuildBoard(tasks []Task) Board {
	var b Board
	for _, t := range tasks {
		switch t.Priority {
		case "low":
			b.Low = append(b.Low, t)
		case "high":
			b.High = append(b.High, t)
		default:
			b.Medium = append(b.Medium, t)
		}
	}
	return b
}

func parseDueDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dueDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
