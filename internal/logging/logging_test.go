package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}

func TestNewLogrusAdapter_Levels(t *testing.T) {
	logger := NewLogrusAdapter("debug", "json")
	require.NotNil(t, logger)

	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, adapter.logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, adapter.logger.Formatter)
}

func TestNewLogrusAdapter_InvalidLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("shouting", "text")
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.InfoLevel, adapter.logger.GetLevel())
}

func TestMockLogger_RecordsEntries(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("started", Field{Key: "count", Value: 3})
	mock.Warn("degraded")

	require.Len(t, mock.Entries, 2)
	assert.True(t, mock.HasEntry("INFO", "started"))
	assert.True(t, mock.HasEntry("WARN", "degraded"))
	assert.False(t, mock.HasEntry("ERROR", "degraded"))
	assert.Equal(t, "count", mock.Entries[0].Fields[0].Key)
}

func TestMockLogger_DerivedLoggersRecordIntoRoot(t *testing.T) {
	mock := &MockLogger{}
	cause := errors.New("boom")

	mock.WithError(cause).WithField("vendor", "Shell").Warn("lookup failed")

	require.Len(t, mock.Entries, 1)
	entry := mock.Entries[0]
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, cause, entry.Error)
	require.Len(t, entry.Fields, 1)
	assert.Equal(t, "vendor", entry.Fields[0].Key)
}
