package sorted

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	var m Map[int, string]
	require.Equal(t, 0, m.Len())

	m.Set(20, "b")
	m.Set(10, "a")
	m.Set(30, "c")
	m.Set(20, "b'")

	require.Equal(t, 3, m.Len())
	require.Equal(t, []int{10, 20, 30}, m.Keys())
	require.Equal(t, []string{"a", "b'", "c"}, m.Values())

	v, found := m.Get(20)
	require.True(t, found)
	require.Equal(t, "b'", v)

	_, found = m.Get(25)
	require.False(t, found)

	require.True(t, m.Delete(20))
	require.False(t, m.Delete(20))
	require.Equal(t, []int{10, 30}, m.Keys())

	k, v := m.At(1)
	require.Equal(t, 30, k)
	require.Equal(t, "c", v)
}

func TestProject(t *testing.T) {
	var m Map[int, int]
	for _, k := range []int{5, 1, 9, 3, 7} {
		m.Set(k, k*10)
	}

	keys, vals := m.Project(3, 8)
	require.Equal(t, []int{3, 5, 7}, keys)
	require.Equal(t, []int{30, 50, 70}, vals)

	keys, _ = m.Project(10, 20)
	require.Empty(t, keys)
}
