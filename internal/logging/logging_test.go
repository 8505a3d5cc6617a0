package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/swayrig/internal/dynamo"
)

func TestNewLevels(t *testing.T) {
	quiet, err := New(false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be off without verbose")
	}

	loud, err := New(true)
	if err != nil {
		t.Fatalf("new verbose: %v", err)
	}
	if !loud.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be on with verbose")
	}
}

func TestProgressInterval(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewProgress(zap.New(core), 1.0)
	for i := 0; i < 180; i++ {
		p.OnStep(dynamo.State{0.1, -0.2}, dynamo.Control{0, 0}, float64(i)/60)
	}
	if got := logs.FilterMessage("progress").Len(); got != 3 {
		t.Errorf("progress lines = %d, want 3", got)
	}
}
