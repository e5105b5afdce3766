package pipeline

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 3; i++ {
		q.Push(Item{Identifier: fmt.Sprint(i)})
	}
	assert.Equal(t, 3, q.Len())
	assert.EqualValues(t, 3, q.Pushed())

	for i := 0; i < 3; i++ {
		item, ok := q.Pop(time.Millisecond)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprint(i), item.Identifier)
	}
	assert.Zero(t, q.Len())
}

func TestQueuePopTimeout(t *testing.T) {
	q := NewQueue()

	start := time.Now()
	_, ok := q.Pop(20 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestQueuePopWakesOnPush(t *testing.T) {
	q := NewQueue()
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Push(Item{Identifier: "late"})
	}()

	item, ok := q.Pop(time.Second)
	require.True(t, ok)
	assert.Equal(t, "late", item.Identifier)
}

func TestQueueManyConsumers(t *testing.T) {
	const items = 5000
	q := NewQueue()

	var (
		mu   sync.Mutex
		seen = make(map[string]int)
		wg   sync.WaitGroup
		done = make(chan struct{})
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, ok := q.Pop(5 * time.Millisecond)
				if ok {
					mu.Lock()
					seen[item.Identifier]++
					mu.Unlock()
					continue
				}
				select {
				case <-done:
					if q.Len() == 0 {
						return
					}
				default:
				}
			}
		}()
	}

	for i := 0; i < items; i++ {
		q.Push(Item{Identifier: fmt.Sprint(i)})
	}
	close(done)
	wg.Wait()

	require.Len(t, seen, items)
	for id, n := range seen {
		assert.Equal(t, 1, n, "item %s popped more than once", id)
	}
}
