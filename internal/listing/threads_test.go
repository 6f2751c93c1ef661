package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadKey(t *testing.T) {
	assert.Equal(t, "000.zip", ThreadKey(0))
	assert.Equal(t, "007.zip", ThreadKey(7))
	assert.Equal(t, "042.zip", ThreadKey(42))
	assert.Equal(t, "999.zip", ThreadKey(999))
}

func TestThreadListerRange(t *testing.T) {
	lister, err := NewThreadLister(5, 3)
	require.NoError(t, err)

	objects, err := lister.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, "005.zip", objects[0].Key)
	assert.Equal(t, "006.zip", objects[1].Key)
	assert.Equal(t, "007.zip", objects[2].Key)
}

func TestThreadListerMax(t *testing.T) {
	lister, err := NewThreadLister(0, 100)
	require.NoError(t, err)

	objects, err := lister.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, objects, 10)
}

func TestThreadListerRestartable(t *testing.T) {
	lister, err := NewThreadLister(0, 5)
	require.NoError(t, err)

	first, err := lister.List(context.Background(), 0)
	require.NoError(t, err)
	second, err := lister.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestThreadListerValidation(t *testing.T) {
	tests := []struct {
		name  string
		start int
		count int
	}{
		{"negative start", -1, 10},
		{"start too large", 1000, 1},
		{"zero count", 0, 0},
		{"negative count", 0, -5},
		{"range past end", 990, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewThreadLister(tt.start, tt.count)
			assert.Error(t, err)
		})
	}
}
