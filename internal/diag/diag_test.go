package diag

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)

func sampleEvents() []Event {
	return []Event{
		{Level: LevelInfo, Stage: StageProfile, OLMC: NoOLMC, Message: "disassembling fuse array", Fields: map[string]string{"device": "GAL20V8"}},
		{Level: LevelDebug, Stage: StageMode, OLMC: NoOLMC, Message: "mode detected", Fields: map[string]string{"syn": "1", "ac0": "0"}},
		{Level: LevelTrace, Stage: StageRow, OLMC: 2, Message: "unused row", Fields: map[string]string{"row": "17"}},
		{Level: LevelWarn, Stage: StageMinimize, OLMC: 5, Message: "equation left unreduced"},
	}
}

func TestRecorderEmit(t *testing.T) {
	rec := &Recorder{}
	rec.Emit(LevelDebug, StageRow, 3, "row", map[string]string{"row": "4"})
	rec.Log(Event{Message: "second"})
	require.Len(t, rec.Events, 2)
	assert.Equal(t, Event{Level: LevelDebug, Stage: StageRow, OLMC: 3, Message: "row", Fields: map[string]string{"row": "4"}}, rec.Events[0])
	assert.Equal(t, "second", rec.Events[1].Message)
}

func TestForwardStampsEvents(t *testing.T) {
	events := sampleEvents()
	events[1].RunID = "other"
	events[2].Timestamp = testTime.Add(time.Hour)

	rec := &Recorder{}
	Forward(NewMultiLogger(rec, NoopLogger{}), events, "run-1", testTime)
	require.Len(t, rec.Events, len(events))
	assert.Equal(t, "run-1", rec.Events[0].RunID)
	assert.Equal(t, "other", rec.Events[1].RunID)
	assert.True(t, rec.Events[0].Timestamp.Equal(testTime))
	assert.True(t, rec.Events[2].Timestamp.Equal(testTime.Add(time.Hour)))

	assert.Empty(t, events[0].RunID, "input events are not modified")
}

func TestLevelAndStageNames(t *testing.T) {
	assert.Equal(t, "TRACE", LevelTrace.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(9).String())
	assert.Equal(t, SlogLevelTrace, LevelTrace.Slog())
	assert.Equal(t, slog.LevelInfo, LevelInfo.Slog())
	assert.Equal(t, "POLARITY", StagePolarity.String())
	assert.Equal(t, "UNKNOWN", Stage(42).String())
}

func TestCBORRoundTrip(t *testing.T) {
	for _, e := range sampleEvents() {
		e.Timestamp = testTime
		e.RunID = "3f0c"
		data, err := EncodeEvent(e)
		require.NoError(t, err)

		got, err := DecodeEvent(data)
		require.NoError(t, err)
		assert.True(t, got.Timestamp.Equal(e.Timestamp))
		got.Timestamp = e.Timestamp
		assert.Equal(t, e, got)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	a := NewSlogAdapter(slog.New(handler))

	Forward(a, sampleEvents(), "run-1", testTime)

	var lines []map[string]any
	dec := json.NewDecoder(&buf)
	for {
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		lines = append(lines, m)
	}
	// The trace event is below the handler level.
	require.Len(t, lines, 3)

	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "disassembling fuse array", lines[0]["msg"])
	assert.Equal(t, "PROFILE", lines[0]["stage"])
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, "GAL20V8", lines[0]["device"])
	assert.NotContains(t, lines[0], "olmc")

	assert.Equal(t, "DEBUG", lines[1]["level"])
	assert.Equal(t, "1", lines[1]["syn"])

	assert.Equal(t, "WARN", lines[2]["level"])
	assert.Equal(t, float64(5), lines[2]["olmc"])
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	for _, run := range []string{"run-1", "run-2"} {
		l, err := NewFileLogger(path)
		require.NoError(t, err)
		Forward(l, sampleEvents(), run, testTime)
		require.NoError(t, l.Close())
		require.NoError(t, l.Close(), "second close is a no-op")
		l.Log(Event{Message: "dropped after close"})
	}

	read := func(f Filter) []Event {
		r, err := OpenReader(path, f)
		require.NoError(t, err)
		defer r.Close()
		var out []Event
		for {
			e, err := r.Next()
			if errors.Is(err, io.EOF) {
				return out
			}
			require.NoError(t, err)
			out = append(out, e)
		}
	}

	all := read(Filter{})
	require.Len(t, all, 8)
	assert.Equal(t, "run-1", all[0].RunID)
	assert.Equal(t, "run-2", all[7].RunID)
	assert.Equal(t, "equation left unreduced", all[7].Message)

	assert.Len(t, read(Filter{MinLevel: LevelDebug}), 6)
	assert.Len(t, read(Filter{RunID: "run-2"}), 4)

	stage := StageRow
	rows := read(Filter{Stage: &stage, RunID: "run-1"})
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].OLMC)
	assert.Equal(t, "17", rows[0].Fields["row"])
}

func TestReaderRejectsGarbage(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xff, 0x00}), Filter{})
	_, err := r.Next()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.NoError(t, r.Close())
}

func TestOpenReaderMissingFile(t *testing.T) {
	_, err := OpenReader(filepath.Join(t.TempDir(), "missing.cbor"), Filter{})
	assert.Error(t, err)
}
