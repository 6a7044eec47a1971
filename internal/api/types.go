// Package api provides a client for the todo & journal REST API.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and display format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. It is stored as
// midnight UTC so two dates compare with ==.
type Date struct {
	t time.Time
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day t falls on in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses "YYYY-MM-DD". Longer ISO timestamps are accepted and
// truncated to their date part, which is how the service returns due dates.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// ParseDateRelative parses user input for a date: "today", "tomorrow",
// "yesterday", "+N" / "-N" days from today, or anything ParseDate accepts.
func ParseDateRelative(s string, today Date) (Date, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	if len(s) > 1 && (s[0] == '+' || s[0] == '-') {
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		if s[0] == '-' {
			n = -n
		}
		return today.AddDays(n), nil
	}
	return ParseDate(s)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. Empty strings decode to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Todo represents a todo item owned by the authenticated user.
type Todo struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	Category  string    `json:"category"`
	DueDate   *Date     `json:"dueDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Due returns the due date and whether one is set.
func (t Todo) Due() (Date, bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return Date{}, false
	}
	return *t.DueDate, true
}

// IsOverdue returns true if the todo is open and its due date lies before today.
func (t Todo) IsOverdue(today Date) bool {
	due, ok := t.Due()
	return ok && !t.Done && due.Before(today)
}

// DueDisplay returns the due date as YYYY-MM-DD or "-" when unset.
func (t Todo) DueDisplay() string {
	due, ok := t.Due()
	if !ok {
		return "-"
	}
	return due.String()
}

// CreateTodoRequest represents the request body for creating a todo.
type CreateTodoRequest struct {
	Text     string `json:"text"`
	DueDate  *Date  `json:"dueDate,omitempty"`
	Category string `json:"category"`
}

// TodoPatch represents a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Text     *string `json:"text,omitempty"`
	Done     *bool   `json:"done,omitempty"`
	Category *string `json:"category,omitempty"`
	DueDate  *Date   `json:"dueDate,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Text == nil && p.Done == nil && p.Category == nil && p.DueDate == nil
}

// JournalEntry is the journal page of one day.
type JournalEntry struct {
	ID        string     `json:"_id,omitempty"`
	Date      Date       `json:"date"`
	Gratitude []string   `json:"gratitude"`
	BestTasks []string   `json:"bestTasks"`
	Mood      int        `json:"mood"`
	Water     int        `json:"water"`
	Notes     string     `json:"notes"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// User is the account returned by the auth endpoints.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

// DisplayName returns the username, falling back to the email address.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Username) != "" {
		return u.Username
	}
	return u.Email
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
