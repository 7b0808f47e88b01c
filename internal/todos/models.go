package todos

import "time"

// Task is a stored unit of work. RawInput and Text are immutable after
// creation; only the completed flag changes.
type Task struct {
	ID        int       `json:"id"`
	RawInput  string    `json:"raw_input"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
