package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "save-roster",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"path": "roster.json", "employees": 3},
	})
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=save-roster")
	assert.Contains(t, out, "duration_ms=12")
	assert.Regexp(t, `employees=3 path=roster.json`, out, "fields are sorted")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:   "load-roster",
		Err:    errors.New("missing"),
		Fields: map[string]any{"fallback": true},
	})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "error=missing")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "open-roster", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
