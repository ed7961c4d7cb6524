package weave

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdge_PublishAndValue(t *testing.T) {
	edge := NewEdge[int]()
	assert.False(t, edge.Retrievable())

	edge.Publish(42)

	assert.True(t, edge.Retrievable())
	assert.Equal(t, 42, edge.Value())
}

func TestEdge_PublishOverwrites(t *testing.T) {
	edge := NewEdge[string]()
	edge.Publish("first")
	edge.Publish("second")

	assert.True(t, edge.Retrievable())
	assert.Equal(t, "second", edge.Value())
}

func TestEdge_Owner(t *testing.T) {
	detached := NewEdge[int]()
	assert.Nil(t, detached.Owner())

	task := NewTask("producer", func() (int, error) { return 1, nil })
	assert.Same(t, task, task.Out().Owner().(*Task[int]))
}

func TestEdge_WaitRetrievable(t *testing.T) {
	edge := NewEdge[int]()

	var wg sync.WaitGroup
	got := make([]int, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			edge.WaitRetrievable()
			got[i] = edge.Value()
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	edge.Publish(7)
	wg.Wait()

	for _, v := range got {
		assert.Equal(t, 7, v)
	}
}

func TestEdge_ZeroSizedPayload(t *testing.T) {
	edge := NewEdge[struct{}]()
	assert.False(t, edge.Retrievable())

	edge.Publish(struct{}{})

	require.True(t, edge.Retrievable())
	edge.WaitRetrievable() // must not block once published
}
