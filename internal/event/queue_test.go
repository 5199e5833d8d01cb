package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 100; i++ {
		q.Push(i)
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, i, q.Wait())
	}
}

func TestQueueWaitBlocksUntilPush(t *testing.T) {
	q := NewQueue[string]()
	done := make(chan string)
	go func() {
		done <- q.Wait()
	}()
	q.Push("hello")
	assert.Equal(t, "hello", <-done)
}

func TestQueueConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 50

	q := NewQueue[int]()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()

	counts := make(map[int]int)
	for i := 0; i < producers*perProducer; i++ {
		counts[q.Wait()]++
	}
	for i := 0; i < perProducer; i++ {
		assert.Equal(t, producers, counts[i])
	}
}
