package domain

import (
	"regexp"
	"strings"
	"time"
)

// TicketType is the three-letter BMC Remedy style prefix of a ticket id.
type TicketType string

const (
	TicketTypeIncident       TicketType = "INC"
	TicketTypeServiceRequest TicketType = "REQ"
	TicketTypeChangeRequest  TicketType = "CRQ"
	TicketTypeProblem        TicketType = "PBI"
	TicketTypeRelease        TicketType = "RLM"
)

var ticketTypeNames = map[TicketType]string{
	TicketTypeIncident:       "Incident",
	TicketTypeServiceRequest: "Service Request",
	TicketTypeChangeRequest:  "Change Request",
	TicketTypeProblem:        "Problem",
	TicketTypeRelease:        "Release",
}

// DisplayName returns the human readable name of the ticket type.
func (t TicketType) DisplayName() string {
	if name, ok := ticketTypeNames[t]; ok {
		return name
	}
	return "Ticket"
}

// Valid reports whether the type is one of the five recognized prefixes.
func (t TicketType) Valid() bool {
	_, ok := ticketTypeNames[t]
	return ok
}

// ParseTicketType normalizes and validates a prefix string.
func ParseTicketType(raw string) (TicketType, error) {
	t := TicketType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", ErrInvalidPrefix
	}
	return t, nil
}

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Valid reports whether the status is one of the recognized states.
// Any move between valid states is allowed; the upstream ITSM process
// never enforced ordering, so neither does this service.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "Low"
	TicketPriorityMedium   TicketPriority = "Medium"
	TicketPriorityHigh     TicketPriority = "High"
	TicketPriorityCritical TicketPriority = "Critical"
)

// Valid reports whether the priority is recognized.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for support tickets. ID is the full external
// identifier (prefix + 10 digit suffix), immutable once assigned and
// never reused.
type Ticket struct {
	ID             string
	Type           TicketType
	Title          string
	Description    string
	Customer       string
	Priority       TicketPriority
	Status         TicketStatus
	ResolutionNote *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ticketIDPattern matches a prefix immediately followed by exactly ten
// digits; the prefix is case-insensitive, the digit run is bounded.
var ticketIDPattern = regexp.MustCompile(`\b(?i:INC|REQ|CRQ|PBI|RLM)[0-9]{10}\b`)

// ExtractTicketID finds the first ticket identifier in free text and
// returns it uppercased. The second return is false when none is present.
func ExtractTicketID(text string) (string, bool) {
	match := ticketIDPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return strings.ToUpper(match), true
}

// TicketTypeFromID derives the type from a well-formed ticket id.
func TicketTypeFromID(id string) TicketType {
	if len(id) < 3 {
		return ""
	}
	return TicketType(strings.ToUpper(id[:3]))
}
