package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ChildrenShareSink(t *testing.T) {
	logger := NewMockLogger()

	child := logger.WithField(FieldParser, "xml")
	child.Info("tree built", F(FieldCount, 12))
	logger.WithError(errors.New("boom")).Warn("field skipped")

	entries := logger.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, []Field{F(FieldParser, "xml"), F(FieldCount, 12)}, entries[0].Fields)
	assert.Nil(t, entries[0].Error)

	assert.Equal(t, "WARN", entries[1].Level)
	assert.EqualError(t, entries[1].Error, "boom")
	assert.Empty(t, entries[1].Fields)
}

func TestMockLogger_HasEntryAndFilter(t *testing.T) {
	logger := NewMockLogger()
	logger.Debug("a")
	logger.Error("b")
	logger.Fatalf("exit %d", 1)

	assert.True(t, logger.HasEntry("ERROR", "b"))
	assert.True(t, logger.HasEntry("FATAL", "exit 1"))
	assert.False(t, logger.HasEntry("INFO", "a"))
	assert.Len(t, logger.EntriesByLevel("DEBUG"), 1)

	logger.Reset()
	assert.Empty(t, logger.Entries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var logger MockLogger
	logger.Info("works")
	assert.True(t, logger.HasEntry("INFO", "works"))
}

func TestMockLogger_Concurrent(t *testing.T) {
	logger := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.WithField("worker", i).Info("done")
		}(i)
	}
	wg.Wait()
	assert.Len(t, logger.Entries(), 50)
}
