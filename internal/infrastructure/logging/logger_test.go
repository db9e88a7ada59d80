package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewBuildsLogger(t *testing.T) {
	logger, err := New(Config{Level: "debug", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.NotNil(t, logger.Logger)
}

func TestFromConfigFallsBack(t *testing.T) {
	logger := FromConfig("not-a-level", false)
	require.NotNil(t, logger)
	assert.NotNil(t, logger.Named("store").WithSession("sess_1"))
}
