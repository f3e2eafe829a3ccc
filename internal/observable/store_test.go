package observable_test

import (
	"sync"
	"testing"

	"academixstore-admin/internal/observable"

	"github.com/stretchr/testify/assert"
)

type counter struct {
	Value int
}

func TestStore(t *testing.T) {
	t.Run("UpdateNotifiesSubscribers", func(t *testing.T) {
		store := observable.New(counter{})
		var seen []int
		store.Subscribe(func(c counter) { seen = append(seen, c.Value) })

		store.Update(func(c *counter) { c.Value = 1 })
		store.Update(func(c *counter) { c.Value++ })

		assert.Equal(t, []int{1, 2}, seen)
		assert.Equal(t, 2, store.Get().Value)
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		store := observable.New(counter{})
		calls := 0
		unsubscribe := store.Subscribe(func(counter) { calls++ })

		store.Update(func(c *counter) { c.Value = 1 })
		unsubscribe()
		store.Update(func(c *counter) { c.Value = 2 })

		assert.Equal(t, 1, calls)
	})

	t.Run("TryUpdateVeto", func(t *testing.T) {
		store := observable.New(counter{Value: 5})
		calls := 0
		store.Subscribe(func(counter) { calls++ })

		state, ok := store.TryUpdate(func(c *counter) bool {
			c.Value = 99
			return false
		})

		assert.False(t, ok)
		assert.Equal(t, 5, state.Value)
		assert.Equal(t, 5, store.Get().Value)
		assert.Zero(t, calls)
	})

	t.Run("ConcurrentUpdateDeliveredLast", func(t *testing.T) {
		store := observable.New(counter{})
		entered := make(chan struct{})
		release := make(chan struct{})

		var mu sync.Mutex
		var seen []int
		store.Subscribe(func(c counter) {
			if c.Value == 1 {
				close(entered)
				<-release
			}
			mu.Lock()
			seen = append(seen, c.Value)
			mu.Unlock()
		})

		done := make(chan struct{})
		go func() {
			store.Update(func(c *counter) { c.Value = 1 })
			close(done)
		}()

		<-entered
		store.Update(func(c *counter) { c.Value = 2 })
		close(release)
		<-done

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []int{1, 2}, seen)
		assert.Equal(t, store.Get().Value, seen[len(seen)-1])
	})

	t.Run("ListenerMayUpdate", func(t *testing.T) {
		store := observable.New(counter{})
		var seen []int
		store.Subscribe(func(c counter) {
			seen = append(seen, c.Value)
			if c.Value < 3 {
				store.Update(func(c *counter) { c.Value++ })
			}
		})

		store.Update(func(c *counter) { c.Value = 1 })

		assert.Equal(t, []int{1, 2, 3}, seen)
		assert.Equal(t, 3, store.Get().Value)
	})
}
