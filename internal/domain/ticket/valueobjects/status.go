package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

type TicketStatus string

const (
	StatusOpen       TicketStatus = "Open"
	StatusInProgress TicketStatus = "InProgress"
	StatusClosed     TicketStatus = "Closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusClosed:     true,
}

// statusAliases maps accepted spellings to canonical statuses. The Russian
// labels are what earlier deployments stored in the status column and what
// the console form still posts.
var statusAliases = map[string]TicketStatus{
	"open":        StatusOpen,
	"in_progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"closed":      StatusClosed,
	"открыта":     StatusOpen,
	"в работе":    StatusInProgress,
	"закрыта":     StatusClosed,
}

// AllStatuses lists statuses in workflow order.
func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusInProgress, StatusClosed}
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsInProgress() bool {
	return ts == StatusInProgress
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// NewTicketStatus parses a status name, accepting canonical names in any case
// and the legacy localized labels.
func NewTicketStatus(s string) (TicketStatus, error) {
	key := cases.Fold().String(strings.Join(strings.Fields(s), " "))
	if ts, ok := statusAliases[key]; ok {
		return ts, nil
	}
	return "", fmt.Errorf("invalid ticket status: %q", s)
}
