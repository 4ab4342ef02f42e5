package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewParamsClamps(t *testing.T) {
	p := NewParams(0, 0)
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultLimit, p.Limit)
	require.Zero(t, p.Offset)

	p = NewParams(3, 500)
	require.Equal(t, MaxLimit, p.Limit)
	require.Equal(t, 200, p.Offset)
}

func TestGetMeta(t *testing.T) {
	m := GetMeta(NewParams(2, 10), 25)
	require.Equal(t, 3, m.TotalPages)
	require.True(t, m.HasNext)
	require.True(t, m.HasPrev)

	m = GetMeta(NewParams(1, 10), 0)
	require.Zero(t, m.TotalPages)
	require.False(t, m.HasNext)
}
