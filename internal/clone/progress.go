// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package clone

// Progress statuses.
const (
	StatusStarted = "started"
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
	StatusWarning = "warning"
)

// Progress is a status update for one milestone or issue.
type Progress struct {
	Kind    string // KindIssue or KindMilestone
	Item    string
	Status  string
	Message string
}

// ProgressFunc receives status updates while a run is in flight.
type ProgressFunc func(Progress)

func (f ProgressFunc) send(kind, item, status, message string) {
	if f == nil {
		return
	}
	f(Progress{Kind: kind, Item: item, Status: status, Message: message})
}
