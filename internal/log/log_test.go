package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGlobals(t *testing.T) {
	undo, err := Globals("warn")
	require.NoError(t, err)
	defer undo()

	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))
	assert.True(t, zap.L().Core().Enabled(zap.WarnLevel))

	_, err = Globals("loud")
	assert.Error(t, err)
}

func TestWithInto(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	ctx := With(context.Background(), zap.Int("run", 3))
	ctx = Into(ctx, "session")
	Info(ctx, "question drawn")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "session", entries[0].LoggerName)
	assert.Equal(t, int64(3), entries[0].ContextMap()["run"])
}
