// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

var _ watermill.LoggerAdapter = (*WatermillAdapter)(nil)

func TestWatermillAdapter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewWatermillAdapter(zerolog.New(&buf))

	adapter.Info("router started", watermill.LogFields{"handlers": 2})
	adapter.Error("handler failed", errors.New("boom"), watermill.LogFields{"topic": "recommendations"})

	out := buf.String()
	for _, want := range []string{`"handlers":2`, `"message":"router started"`, `"error":"boom"`, `"topic":"recommendations"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestWatermillAdapter_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewWatermillAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	child := adapter.With(watermill.LogFields{"subscriber": "audit"})

	child.Debug("suppressed", nil)
	child.Trace("suppressed", nil)
	child.Info("consumed", nil)

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("debug/trace should be filtered: %s", out)
	}
	if !strings.Contains(out, `"subscriber":"audit"`) {
		t.Errorf("With fields missing: %s", out)
	}
}
