package clientstore_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/2beens/squatcoach/internal/clientstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type counter struct {
	n       int
	history []int
}

func newCounter() counter {
	return counter{}
}

func TestStore_UpdateCreatesLazily(t *testing.T) {
	s := clientstore.New(newCounter)
	assert.Equal(t, 0, s.Len())

	found := s.View("a", func(c *counter) {
		t.Fatal("view must not run for unknown client")
	})
	assert.False(t, found)
	assert.Equal(t, 0, s.Len(), "view must not create clients")

	require.NoError(t, s.Update("a", func(c *counter) error {
		c.n++
		return nil
	}))
	assert.Equal(t, 1, s.Len())

	var got int
	assert.True(t, s.View("a", func(c *counter) { got = c.n }))
	assert.Equal(t, 1, got)
}

func TestStore_UpdateErrorIsReturned(t *testing.T) {
	s := clientstore.New(newCounter)
	testErr := errors.New("nope")
	err := s.Update("a", func(c *counter) error {
		return testErr
	})
	assert.ErrorIs(t, err, testErr)
}

func TestStore_ConcurrentUpdatesAreSerializedPerClient(t *testing.T) {
	s := clientstore.New(newCounter)
	clients := []string{"c1", "c2", "c3", "c4"}
	const perClient = 250

	var wg sync.WaitGroup
	for _, id := range clients {
		for i := 0; i < perClient; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_ = s.Update(id, func(c *counter) error {
					// read-modify-write that would race without the per-client lock
					next := c.n + 1
					c.history = append(c.history, next)
					c.n = next
					return nil
				})
			}(id)
		}
	}
	wg.Wait()

	assert.Equal(t, len(clients), s.Len())

	for _, id := range clients {
		s.View(id, func(c *counter) {
			assert.Equal(t, perClient, c.n)
			require.Len(t, c.history, perClient)
			for i, v := range c.history {
				assert.Equal(t, i+1, v)
			}
		})
	}
}
