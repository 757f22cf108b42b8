package diag

import "time"

// Logger receives diagnostic events.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards all events.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}

// Recorder keeps events in memory in the order they were logged.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Log(event Event) {
	r.Events = append(r.Events, event)
}

// Emit is a shorthand for logging an event built from its parts.
func (r *Recorder) Emit(level Level, stage Stage, olmc int, msg string, fields map[string]string) {
	r.Log(Event{Level: level, Stage: stage, OLMC: olmc, Message: msg, Fields: fields})
}

var _ Logger = (*Recorder)(nil)

// Forward sends events to l, stamping them with runID and, when they
// carry none, the time t.
func Forward(l Logger, events []Event, runID string, t time.Time) {
	for _, e := range events {
		if e.Timestamp.IsZero() {
			e.Timestamp = t
		}
		if e.RunID == "" {
			e.RunID = runID
		}
		l.Log(e)
	}
}
