package diag

import (
	"context"
	"log/slog"
	"sort"
)

// SlogAdapter writes events to an slog.Logger at the event's own level.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("stage", event.Stage.String()),
	}
	if event.RunID != "" {
		attrs = append(attrs, slog.String("run_id", event.RunID))
	}
	if event.OLMC != NoOLMC {
		attrs = append(attrs, slog.Int("olmc", event.OLMC))
	}
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, event.Fields[k]))
	}
	a.logger.LogAttrs(context.Background(), event.Level.Slog(), event.Message, attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
