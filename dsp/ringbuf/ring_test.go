package ringbuf

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		storage  []int
		wantErr  error
	}{
		{name: "power of two", capacity: 8, storage: make([]int, 8)},
		{name: "one", capacity: 1, storage: make([]int, 1)},
		{name: "five", capacity: 5, storage: make([]int, 5), wantErr: ErrNotPowerOfTwo},
		{name: "zero", capacity: 0, storage: []int{}, wantErr: ErrNotPowerOfTwo},
		{name: "negative", capacity: -4, storage: make([]int, 4), wantErr: ErrNotPowerOfTwo},
		{name: "nil storage", capacity: 8, storage: nil, wantErr: ErrInvalidStorage},
		{name: "short storage", capacity: 8, storage: make([]int, 4), wantErr: ErrInvalidStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.capacity, tt.storage)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.capacity, r.Cap())
			assert.Equal(t, 0, r.Count())
			assert.True(t, r.Empty())
		})
	}
}

func TestFIFOOrder(t *testing.T) {
	r, err := Make[int](4)
	require.NoError(t, err)

	// Interleave puts and gets so the counters wrap the slot mask many times.
	next, want := 0, 0
	for round := 0; round < 50; round++ {
		for r.Count() < 3 {
			require.NoError(t, r.Put(next))
			next++
		}
		for r.Count() > 1 {
			got, err := r.Get()
			require.NoError(t, err)
			require.Equal(t, want, got)
			want++
		}
	}
}

func TestPutFullLeavesStateUnchanged(t *testing.T) {
	r, err := Make[float64](2)
	require.NoError(t, err)

	require.NoError(t, r.Put(1))
	require.NoError(t, r.Put(2))
	require.True(t, r.Full())

	require.ErrorIs(t, r.Put(3), ErrFull)
	assert.Equal(t, 2, r.Count())

	v, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = r.Get()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestGetEmptyLeavesStateUnchanged(t *testing.T) {
	r, err := Make[float64](4)
	require.NoError(t, err)

	_, err = r.Get()
	require.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 0, r.Count())

	require.NoError(t, r.Put(7))
	v, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestCount(t *testing.T) {
	r, err := Make[int](16)
	require.NoError(t, err)

	for k := 0; k <= 16; k++ {
		for j := 0; j <= k; j++ {
			r.Clear()
			for i := 0; i < k; i++ {
				require.NoError(t, r.Put(i))
			}
			for i := 0; i < j; i++ {
				_, err := r.Get()
				require.NoError(t, err)
			}
			require.Equal(t, k-j, r.Count(), "k=%d j=%d", k, j)
		}
	}
}

func TestClear(t *testing.T) {
	storage := make([]int, 4)
	r, err := New(4, storage)
	require.NoError(t, err)

	require.NoError(t, r.Put(5))
	require.NoError(t, r.Put(6))
	r.Clear()

	assert.Equal(t, 0, r.Count())
	assert.Equal(t, []int{0, 0, 0, 0}, storage)
}

func TestSingleProducerSingleConsumer(t *testing.T) {
	r, err := Make[int](8)
	require.NoError(t, err)

	const total = 10000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; {
			if r.Put(i) != nil {
				runtime.Gosched()
				continue
			}
			i++
		}
	}()

	for want := 0; want < total; {
		v, err := r.Get()
		if err != nil {
			runtime.Gosched()
			continue
		}
		require.Equal(t, want, v)
		want++
	}
	wg.Wait()
	assert.True(t, r.Empty())
}
