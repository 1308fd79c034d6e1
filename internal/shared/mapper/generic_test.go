package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    uint
	Value string
}

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice([]int(nil), strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestMapSlicePtrWithID(t *testing.T) {
	rows := []*row{{ID: 1, Value: "a"}, nil, {ID: 2, Value: "skip"}, {ID: 3, Value: "c"}}

	got, err := MapSlicePtrWithID(rows, func(r *row) (*string, error) {
		if r.Value == "skip" {
			return nil, nil
		}
		v := r.Value
		return &v, nil
	}, func(r *row) uint { return r.ID })
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", *got[0])
	assert.Equal(t, "c", *got[1])

	_, err = MapSlicePtrWithID(rows, func(r *row) (*string, error) {
		if r.ID == 3 {
			return nil, errors.New("bad status")
		}
		return &r.Value, nil
	}, func(r *row) uint { return r.ID })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to map item ID 3")
}

func TestUniqueIDs(t *testing.T) {
	rows := []row{{ID: 4}, {ID: 2}, {ID: 4}, {ID: 9}}
	assert.Equal(t, []uint{4, 2, 9}, UniqueIDs(rows, func(r row) uint { return r.ID }))
	assert.Empty(t, UniqueIDs([]row{}, func(r row) uint { return r.ID }))
}
