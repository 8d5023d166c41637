package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	debugLogger, err := New(true)
	require.NoError(t, err)
	assert.True(t, debugLogger.Core().Enabled(zap.DebugLevel))

	assert.NotNil(t, Nop())
}
