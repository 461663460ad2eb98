package rental

import (
	"errors"
	"time"
)

var (
	ErrInvalidTerm   = errors.New("invalid rental term")
	ErrInvalidStatus = errors.New("invalid rental status")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
	// StatusOverdue is only ever persisted as an administrative override;
	// normal reads derive overdueness from the end date.
	StatusOverdue Status = "overdue"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusReturned, StatusOverdue:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Effective derives overdueness at read time: Active past the end date
// reads as Overdue. Returned is terminal and a persisted Overdue (admin
// override) stays overdue regardless of the date. The derivation is
// never written back.
func (s Status) Effective(endDate, now time.Time) Status {
	if s == StatusActive && now.After(endDate) {
		return StatusOverdue
	}
	return s
}

// IsReturnable reports whether a return transition is allowed. Overdue
// rentals (persisted or derived) can still be returned.
func (s Status) IsReturnable() bool {
	return s == StatusActive || s == StatusOverdue
}

type Term string

const (
	TermTwoWeeks    Term = "2weeks"
	TermOneMonth    Term = "1month"
	TermThreeMonths Term = "3months"
)

func (t Term) String() string {
	return string(t)
}

func (t Term) IsValid() bool {
	switch t {
	case TermTwoWeeks, TermOneMonth, TermThreeMonths:
		return true
	default:
		return false
	}
}

func NewTerm(s string) (Term, error) {
	term := Term(s)
	if !term.IsValid() {
		return "", ErrInvalidTerm
	}
	return term, nil
}
