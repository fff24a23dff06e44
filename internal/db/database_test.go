package db

import (
	"errors"
	"sync"
	"testing"

	"github.com/jwtpizza/pizza-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_InitializeRetriesAfterFailure(t *testing.T) {
	d := New(&config.Config{})
	calls := 0
	d.setup = func() error {
		calls++
		if calls == 1 {
			return errors.New("connection refused")
		}
		return nil
	}

	err := d.Initialize()
	assert.EqualError(t, err, "connection refused")
	assert.False(t, d.Ready())

	require.NoError(t, d.Initialize())
	assert.True(t, d.Ready())

	require.NoError(t, d.Initialize())
	assert.Equal(t, 2, calls)
}

func TestDatabase_InitializeConcurrentCallersRunOnce(t *testing.T) {
	d := New(&config.Config{})
	var mu sync.Mutex
	calls := 0
	d.setup = func() error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Initialize())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	assert.True(t, d.Ready())
}
