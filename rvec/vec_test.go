package rvec_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/plus3/resizingvec/rvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	Index int
	Value string
}

func collect[T any](v *rvec.Vec[T]) []pair {
	var out []pair
	for i, value := range v.All() {
		out = append(out, pair{Index: i, Value: fmt.Sprint(value)})
	}
	return out
}

func TestNewIsEmpty(t *testing.T) {
	v := rvec.New[string]()

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	assert.Empty(t, collect(v))
}

func TestInsertGrowsToIndex(t *testing.T) {
	v := rvec.New[string]()

	prev, ok := v.Insert(5, "F")
	assert.False(t, ok)
	assert.Equal(t, "", prev)

	assert.Equal(t, 6, v.Cap())
	assert.Equal(t, 1, v.Len())

	for i := 0; i < 5; i++ {
		_, ok := v.Get(i)
		assert.False(t, ok, "index %d should be empty", i)
	}

	got, ok := v.Get(5)
	require.True(t, ok)
	assert.Equal(t, "F", got)
}

func TestInsertWithinCapacityDoesNotGrow(t *testing.T) {
	v := rvec.New[int]()
	v.Insert(9, 9)
	require.Equal(t, 10, v.Cap())

	v.Insert(3, 3)
	v.Insert(0, 0)

	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, 3, v.Len())
}

func TestOverwrite(t *testing.T) {
	v := rvec.New[string]()

	_, ok := v.Insert(2, "first")
	require.False(t, ok)

	prev, ok := v.Insert(2, "second")
	assert.True(t, ok)
	assert.Equal(t, "first", prev)
	assert.Equal(t, 1, v.Len())

	got, ok := v.Get(2)
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestGetOutOfRange(t *testing.T) {
	v := rvec.New[string]()

	_, ok := v.Get(100)
	assert.False(t, ok)
	assert.Equal(t, 0, v.Cap(), "reads must not grow the vec")

	_, ok = v.Get(-1)
	assert.False(t, ok)

	v.Insert(1, "B")
	_, ok = v.Get(2)
	assert.False(t, ok)
	assert.Equal(t, 2, v.Cap())
}

func TestRemove(t *testing.T) {
	v := rvec.New[string]()
	v.Insert(0, "A")
	v.Insert(1, "B")

	removed, ok := v.Remove(0)
	assert.True(t, ok)
	assert.Equal(t, "A", removed)

	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 2, v.Cap(), "remove must not shrink the vec")

	_, ok = v.Get(0)
	assert.False(t, ok)

	got, ok := v.Get(1)
	require.True(t, ok)
	assert.Equal(t, "B", got)
}

func TestRemoveAbsent(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"never written", 1},
		{"past the end", 10},
		{"already removed", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := rvec.New[string]()
			v.Insert(0, "A")
			v.Insert(2, "C")
			v.Remove(0)

			removed, ok := v.Remove(tt.index)
			assert.False(t, ok)
			assert.Equal(t, "", removed)
			assert.Equal(t, 1, v.Len())
			assert.Equal(t, 3, v.Cap())
		})
	}
}

func TestRemoveThenReinsert(t *testing.T) {
	v := rvec.New[int]()
	v.Insert(4, 40)
	v.Remove(4)

	_, ok := v.Insert(4, 41)
	assert.False(t, ok, "a removed slot is empty again")
	assert.Equal(t, 1, v.Len())
}

func TestNegativeIndexPanics(t *testing.T) {
	v := rvec.New[int]()
	v.Insert(1, 1)

	assertIndexPanic := func(t *testing.T, op string, fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			require.NotNil(t, r, "%s should panic", op)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorIs(t, err, rvec.ErrNegativeIndex)

			var indexErr *rvec.IndexError
			require.ErrorAs(t, err, &indexErr)
			assert.Equal(t, op, indexErr.Op)
			assert.Equal(t, -3, indexErr.Index)
		}()
		fn()
	}

	assertIndexPanic(t, "insert", func() { v.Insert(-3, 0) })
	assertIndexPanic(t, "remove", func() { v.Remove(-3) })
	assertIndexPanic(t, "with capacity", func() { rvec.WithCapacity[int](-3) })

	assert.Equal(t, 1, v.Len(), "a rejected call must not mutate")
	assert.Equal(t, 2, v.Cap())
}

func TestInsertAboveMaxIndexPanics(t *testing.T) {
	v := rvec.New[int]()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, rvec.ErrIndexOutOfDomain)
		assert.NotErrorIs(t, err, rvec.ErrNegativeIndex)
		assert.Equal(t, 0, v.Cap())
	}()
	v.Insert(math.MaxInt, 1)
}

func TestWithCapacity(t *testing.T) {
	v := rvec.WithCapacity[string](10)
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, 0, v.Len())

	v.Insert(0, "0")
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, 1, v.Len())

	v.Insert(10, "10")
	assert.Equal(t, 11, v.Cap())
	assert.Equal(t, 2, v.Len())
}

func TestFromSlice(t *testing.T) {
	v := rvec.FromSlice([]string{"a", "b", "c"})

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 3, v.Cap())
	assert.Equal(t, []pair{{0, "a"}, {1, "b"}, {2, "c"}}, collect(v))

	empty := rvec.FromSlice[int](nil)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.Cap())
}

func TestRef(t *testing.T) {
	type counter struct{ N int }

	v := rvec.New[counter]()
	v.Insert(3, counter{N: 1})

	ref := v.Ref(3)
	require.NotNil(t, ref)
	ref.N = 7

	got, _ := v.Get(3)
	assert.Equal(t, 7, got.N)

	assert.Nil(t, v.Ref(0))
	assert.Nil(t, v.Ref(99))
	assert.Nil(t, v.Ref(-1))
}

func TestHas(t *testing.T) {
	v := rvec.New[int]()
	v.Insert(2, 0)

	assert.True(t, v.Has(2), "zero values are still present")
	assert.False(t, v.Has(1))
	assert.False(t, v.Has(3))
	assert.False(t, v.Has(-1))
}

func TestIterationOrder(t *testing.T) {
	v := rvec.New[string]()
	v.Insert(3, "X")
	v.Insert(1, "Y")

	assert.Equal(t, []pair{{1, "Y"}, {3, "X"}}, collect(v))
	assert.Equal(t, []int{1, 3}, slices.Collect(v.Indices()))
	assert.Equal(t, []string{"Y", "X"}, slices.Collect(v.Values()))

	// a fresh call starts over
	assert.Equal(t, []pair{{1, "Y"}, {3, "X"}}, collect(v))
}

func TestIterationStopsEarly(t *testing.T) {
	v := rvec.FromSlice([]int{0, 1, 2, 3, 4})

	var seen []int
	for i := range v.All() {
		seen = append(seen, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seen)

	var values []int
	for value := range v.Values() {
		values = append(values, value)
		if len(values) == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, values)
}

func TestIterationSurvivesShrinkInBody(t *testing.T) {
	t.Run("clear", func(t *testing.T) {
		v := rvec.FromSlice([]string{"a", "b", "c"})

		assert.NotPanics(t, func() {
			for i := range v.All() {
				if i == 0 {
					v.Clear()
				}
			}
		})
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, 0, v.Cap())
	})

	t.Run("compact", func(t *testing.T) {
		v := rvec.New[string]()
		v.Insert(0, "a")
		v.Insert(2, "b")
		v.Insert(4, "c")

		assert.NotPanics(t, func() {
			for i := range v.Indices() {
				if i == 0 {
					v.Compact()
				}
			}
		})
		assert.Equal(t, []pair{{0, "a"}, {1, "b"}, {2, "c"}}, collect(v))
	})

	t.Run("values", func(t *testing.T) {
		v := rvec.FromSlice([]int{1, 2, 3})

		assert.NotPanics(t, func() {
			for range v.Values() {
				v.Clear()
			}
		})
	})
}

func TestClear(t *testing.T) {
	v := rvec.New[string]()
	v.Insert(1, "1")
	v.Insert(2, "2")
	v.Insert(3, "3")
	assert.Len(t, collect(v), 3)

	v.Clear()

	assert.Empty(t, collect(v))
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())

	v.Insert(0, "again")
	assert.Equal(t, 1, v.Len())
}

func TestString(t *testing.T) {
	v := rvec.New[string]()
	v.Insert(5, "F")

	assert.Equal(t, "rvec.Vec[cap=6 len=1]", v.String())
}

// TestAgainstMap drives random operations against a Vec and a map and checks
// they agree after every step.
func TestAgainstMap(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	v := rvec.New[int]()
	model := make(map[int]int)
	maxCap := 0

	for step := 0; step < 5000; step++ {
		index := rng.IntN(200)

		switch rng.IntN(3) {
		case 0, 1:
			value := rng.Int()
			prev, ok := v.Insert(index, value)
			want, had := model[index]
			require.Equal(t, had, ok, "step %d insert %d", step, index)
			require.Equal(t, want, prev)
			model[index] = value
		case 2:
			removed, ok := v.Remove(index)
			want, had := model[index]
			require.Equal(t, had, ok, "step %d remove %d", step, index)
			require.Equal(t, want, removed)
			delete(model, index)
		}

		require.Equal(t, len(model), v.Len())
		require.GreaterOrEqual(t, v.Cap(), maxCap, "cap must never shrink")
		maxCap = v.Cap()
	}

	for i := 0; i < maxCap+10; i++ {
		got, ok := v.Get(i)
		want, had := model[i]
		assert.Equal(t, had, ok, "index %d", i)
		assert.Equal(t, want, got, "index %d", i)
	}

	prevIndex := -1
	count := 0
	for i, value := range v.All() {
		assert.Greater(t, i, prevIndex)
		assert.Equal(t, model[i], value)
		prevIndex = i
		count++
	}
	assert.Equal(t, len(model), count)
}
