package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 5, 1, 12, 30, 45, 123456789, loc)

	assert.Equal(t, "2024-05-01T09:30:45.123Z", FormatTimestamp(ts))

	task := &Task{CreatedAt: ts}
	assert.Equal(t, "2024-05-01T09:30:45.123Z", task.CreatedAtString())
}

func TestTaskPatch_Apply(t *testing.T) {
	title := "Buy bread"
	done := true

	tests := []struct {
		name  string
		patch TaskPatch
		want  Task
		empty bool
	}{
		{name: "empty", patch: TaskPatch{}, want: Task{Title: "Buy milk"}, empty: true},
		{name: "title only", patch: TaskPatch{Title: &title}, want: Task{Title: "Buy bread"}},
		{name: "completed only", patch: TaskPatch{Completed: &done}, want: Task{Title: "Buy milk", Completed: true}},
		{name: "both", patch: TaskPatch{Title: &title, Completed: &done}, want: Task{Title: "Buy bread", Completed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Title: "Buy milk"}
			tt.patch.Apply(&task)

			assert.Equal(t, tt.want, task)
			assert.Equal(t, tt.empty, tt.patch.IsEmpty())
		})
	}
}
