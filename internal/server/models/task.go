package models

import "time"

// TimestampLayout is the wire form of Task.CreatedAt: UTC RFC 3339 with
// millisecond precision, so values sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatedAtString formats CreatedAt with TimestampLayout.
func (t *Task) CreatedAtString() string {
	return FormatTimestamp(t.CreatedAt)
}

// FormatTimestamp renders ts in UTC using TimestampLayout.
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Format(TimestampLayout)
}

// TaskPatch lists the fields of a Task an update may change. Nil fields are
// left untouched.
type TaskPatch struct {
	Title     *string
	Completed *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply copies the non-nil fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
