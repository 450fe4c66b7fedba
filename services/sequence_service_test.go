package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPublicIDStartsAtConfiguredValue(t *testing.T) {
	db := setupTestDB(t)
	seq := NewSequenceService(db, "ZLX-", 100001)

	id, err := seq.NextPublicID()
	require.NoError(t, err)
	assert.Equal(t, "ZLX-100001", id)

	id, err = seq.NextPublicID()
	require.NoError(t, err)
	assert.Equal(t, "ZLX-100002", id)
}

func TestNextPublicIDCustomPrefix(t *testing.T) {
	db := setupTestDB(t)
	seq := NewSequenceService(db, "ORD-", 500)

	id, err := seq.NextPublicID()
	require.NoError(t, err)
	assert.Equal(t, "ORD-500", id)
}

func TestNextPublicIDConcurrentAllocation(t *testing.T) {
	db := setupTestDB(t)
	seq := NewSequenceService(db, "ZLX-", 100001)

	const n = 25
	results := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := seq.NextPublicID()
			if err != nil {
				results <- fmt.Sprintf("error: %v", err)
				return
			}
			results <- id
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for id := range results {
		assert.NotContains(t, id, "error", "allocation failed")
		assert.False(t, seen[id], "duplicate public order id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	// The issued values must be exactly the contiguous block starting at the
	// configured start: no gaps, no skips, strictly increasing as a set.
	for v := int64(100001); v < 100001+n; v++ {
		assert.True(t, seen[fmt.Sprintf("ZLX-%d", v)], "missing id ZLX-%d", v)
	}
}
