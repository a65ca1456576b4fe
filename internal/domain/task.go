package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// dayKeyLayout is the canonical wire form of a calendar day. It is
// locale- and timezone-independent on purpose: the same calendar day
// must always produce the same key.
const dayKeyLayout = "2006-01-02"

// DayKey identifies one calendar day ("YYYY-MM-DD"). It is the bucket
// key of the task mapping and the serialized form of Task.Date.
type DayKey string

// DayKeyFor truncates t to day granularity using t's own calendar
// date. No timezone conversion is applied.
func DayKeyFor(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// ParseDayKey validates s as a "YYYY-MM-DD" day key.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("domain.ParseDayKey: %w", err)
	}
	return DayKeyFor(t), nil
}

// Time returns midnight UTC of the day, or the zero time if the key is
// malformed.
func (k DayKey) Time() time.Time {
	t, err := time.Parse(dayKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Task is a single calendar entry. ID and CreatedAt are assigned once
// at creation and never change; Date is the task's bucket key.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        DayKey    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft is the caller-supplied part of a new task. The store assigns
// ID and CreatedAt.
type Draft struct {
	Title       string
	Description string
	Date        DayKey
}
