package diag

import (
	"log/slog"
	"time"
)

// NoOLMC marks an event that is not tied to an output cell.
const NoOLMC = -1

// Event is one diagnostic record. CBOR encoding uses integer keys.
type Event struct {
	// Timestamp is filled in when the event is logged.
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies one decode run (UUID).
	RunID string `cbor:"2,keyasint,omitempty"`

	Level Level `cbor:"3,keyasint"`
	Stage Stage `cbor:"4,keyasint"`

	// OLMC is the output cell index, or NoOLMC.
	OLMC int `cbor:"5,keyasint"`

	Message string            `cbor:"6,keyasint"`
	Fields  map[string]string `cbor:"7,keyasint,omitempty"`
}

// Level is the verbosity an event is shown at.
type Level uint8

const (
	LevelTrace Level = 0
	LevelDebug Level = 1
	LevelInfo  Level = 2
	LevelWarn  Level = 3
)

// SlogLevelTrace is the slog level used for LevelTrace events.
const SlogLevelTrace = slog.LevelDebug - 4

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// Slog maps the level onto slog's scale.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelTrace:
		return SlogLevelTrace
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Stage names the decoder step that produced an event.
type Stage uint8

const (
	StageProfile  Stage = 0
	StageMode     Stage = 1
	StageRow      Stage = 2
	StagePolarity Stage = 3
	StageControl  Stage = 4
	StageMinimize Stage = 5
)

func (s Stage) String() string {
	switch s {
	case StageProfile:
		return "PROFILE"
	case StageMode:
		return "MODE"
	case StageRow:
		return "ROW"
	case StagePolarity:
		return "POLARITY"
	case StageControl:
		return "CONTROL"
	case StageMinimize:
		return "MINIMIZE"
	default:
		return "UNKNOWN"
	}
}
