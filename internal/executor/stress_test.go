package executor

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eelitiawan/taskweave/internal/weave"
)

func TestStress_IndependentTasks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const count = 5000

	exec := New()
	defer exec.Close()

	var counter atomic.Int64
	for i := 0; i < count; i++ {
		exec.Add(weave.NewTask("independent", func() (struct{}, error) {
			counter.Add(1)
			return struct{}{}, nil
		}))
	}

	exec.Run()
	exec.Wait()

	assert.Equal(t, int64(count), counter.Load())
}

func TestStress_LinearChain(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const depth = 1000

	exec := New()
	defer exec.Close()

	prev := weave.NewTask("t0", func() (int, error) { return 0, nil })
	exec.Add(prev)

	last := prev
	for i := 1; i < depth; i++ {
		dep := last
		next := weave.NewTask("link", func() (int, error) {
			return dep.Out().Value() + 1, nil
		}).Bind(dep.Out())
		exec.Add(next)
		last = next
	}

	exec.Run()
	exec.Wait()

	assert.Equal(t, depth-1, last.Result())
}

func TestStress_BinaryTreeReduction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	// Leaves hold 1; every inner node sums its two children. The root
	// must equal the leaf count.
	const levels = 9 // 256 leaves

	exec := New()
	defer exec.Close()

	level := make([]*weave.Task[int], 1<<(levels-1))
	for i := range level {
		level[i] = weave.NewTask("leaf", func() (int, error) { return 1, nil })
		exec.Add(level[i])
	}

	for len(level) > 1 {
		next := make([]*weave.Task[int], len(level)/2)
		for i := range next {
			left, right := level[2*i], level[2*i+1]
			next[i] = weave.NewTask("sum", func() (int, error) {
				return left.Out().Value() + right.Out().Value(), nil
			}).Bind(left.Out(), right.Out())
			exec.Add(next[i])
		}
		level = next
	}

	exec.Run()
	exec.Wait()

	assert.Equal(t, 1<<(levels-1), level[0].Result())
}

func TestStress_MultiLevelDAG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	// Layered graph: each task in layer n depends on every task of
	// layer n-1 and adds one.
	const layers = 20
	const width = 25

	exec := New()
	defer exec.Close()

	var prev []*weave.Task[int]
	for l := 0; l < layers; l++ {
		current := make([]*weave.Task[int], width)
		for i := 0; i < width; i++ {
			deps := prev
			task := weave.NewTask("layer", func() (int, error) {
				depth := 0
				for _, d := range deps {
					if v := d.Out().Value(); v > depth {
						depth = v
					}
				}
				return depth + 1, nil
			})
			for _, d := range deps {
				task.Bind(d.Out())
			}
			current[i] = task
			exec.Add(task)
		}
		prev = current
	}

	exec.Run()
	exec.Wait()

	for _, task := range prev {
		assert.Equal(t, layers, task.Result())
	}
}

func TestStress_PoolRepeatedUse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	pool := NewPool(4, nil)
	defer pool.Close()
	pool.Run()

	var counter atomic.Int64
	for round := 0; round < 10; round++ {
		for i := 0; i < 500; i++ {
			require.True(t, pool.Submit(func() { counter.Add(1) }))
		}
		pool.Wait()
	}

	assert.Equal(t, int64(5000), counter.Load())
}
