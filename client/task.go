// Package client is the service's first-party client: an HTTP API client,
// an explicit state container for the dashboard, and the pure view
// derivations (filtering, sorting, upcoming window, calendar grid) the
// presentations are built from.
package client

// Task is the UI shape of an API task record. Field names line up with the
// wire format so records decode directly.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	DueDate   string `json:"dueDate"`
}

// Filter restricts which tasks the list presentations show.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
)

// SortMode orders the filtered task list.
type SortMode string

const (
	SortNone     SortMode = "none"
	SortDueDate  SortMode = "dueDate"
	SortPriority SortMode = "priority"
	SortAZ       SortMode = "az"
)

var priorityRank = map[string]int{
	"high":   0,
	"medium": 1,
	"low":    2,
}
