// Package candidate holds the player attributes a club profile is scored against.
package candidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date that decodes from either "2006-01-02" or RFC3339.
type Date struct {
	time.Time
}

// NewDate returns the date at midnight UTC.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts both supported layouts.
func ParseDate(s string) (*Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	return &Date{Time: t.UTC()}, nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) String() string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Affiliation is one spell at a club. An affiliation without Left is the
// current one.
type Affiliation struct {
	Club          string `json:"club,omitempty"`
	Joined        *Date  `json:"joined,omitempty"`
	Left          *Date  `json:"left,omitempty"`
	ContractUntil *Date  `json:"contract_until,omitempty"`
}

// Attributes describe one candidate. Every field may be absent.
type Attributes struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name,omitempty"`
	Position    string        `json:"position,omitempty"`
	DateOfBirth *Date         `json:"date_of_birth,omitempty"`
	MarketValue *float64      `json:"market_value,omitempty"`
	Nationality string        `json:"nationality,omitempty"`
	Clubs       []Affiliation `json:"clubs,omitempty"`
}

// Label is the name used in logs and reports.
func (a *Attributes) Label() string {
	switch {
	case a == nil:
		return ""
	case a.Name != "":
		return a.Name
	default:
		return a.ID
	}
}

// AgeAt returns full years lived at now. The second value is false when the
// date of birth is unknown or lies after now.
func (a *Attributes) AgeAt(now time.Time) (int, bool) {
	if a == nil || a.DateOfBirth == nil || a.DateOfBirth.IsZero() {
		return 0, false
	}
	dob := a.DateOfBirth.UTC()
	now = now.UTC()
	if now.Before(dob) {
		return 0, false
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// CurrentAffiliation is the first open-ended affiliation, or nil.
func (a *Attributes) CurrentAffiliation() *Affiliation {
	if a == nil {
		return nil
	}
	for i := range a.Clubs {
		if a.Clubs[i].Left == nil || a.Clubs[i].Left.IsZero() {
			return &a.Clubs[i]
		}
	}
	return nil
}

// Today returns midnight UTC of the calendar day of now.
func Today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthsToContractEnd counts 30-day months from the day of now to the end of
// the current contract. It is negative for an expired contract and unknown
// when there is no current affiliation or it has no end date.
func (a *Attributes) MonthsToContractEnd(now time.Time) (float64, bool) {
	current := a.CurrentAffiliation()
	if current == nil || current.ContractUntil == nil || current.ContractUntil.IsZero() {
		return 0, false
	}
	days := current.ContractUntil.Sub(Today(now)).Hours() / 24
	return days / 30, true
}
