package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
	assert.Equal(t, 1, logger.Count("error"))
}

func TestMockLogger_ChildrenShareBuffer(t *testing.T) {
	logger := testutil.NewMockLogger()
	child := logger.Named("screening").Named("stage").With(logging.String("run_id", "r1"))

	child.Debug("from child", logging.Int("row", 3))

	entry, ok := logger.Find("from child")
	require.True(t, ok)
	assert.Equal(t, "screening.stage", entry.Name)
	v, ok := testutil.FieldValue(entry, "run_id")
	require.True(t, ok)
	assert.Equal(t, "r1", v)
	v, ok = testutil.FieldValue(entry, "row")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = testutil.FieldValue(entry, "missing")
	assert.False(t, ok)
}

func TestNopLogger(t *testing.T) {
	logger := testutil.NewNopLogger()

	// Ensure it implements the interface and doesn't panic
	var _ logging.Logger = logger
	logger.Info("test info")
	logger.Named("x").With(logging.Bool("b", true)).Error("test error")

	assert.NotNil(t, logger)
}

//Personal.AI order the ending
