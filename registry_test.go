package iospace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryOpenRecognizesMemoryHandler(t *testing.T) {
	var r Registry
	s, err := r.Open("*m*", ModeRead|ModeWrite, true)
	require.NoError(t, err)
	require.Equal(t, "*m*", s.Handler())
	require.Equal(t, 1, s.ID())
	require.Same(t, s, r.Current())
}

func TestRegistryOpenInvalidFlagsReturnsErrFlags(t *testing.T) {
	var r Registry
	path := filepath.Join(t.TempDir(), "bad.dat")
	_, err := r.Open(path, ModeWrite, true)
	require.Equal(t, ErrFlags, CodeOf(err))
}

func TestRegistrySearch(t *testing.T) {
	var r Registry
	s1, err := r.Open("*a*", ModeRead|ModeWrite, false)
	require.NoError(t, err)
	_, err = r.Open("*b*", ModeRead|ModeWrite, false)
	require.NoError(t, err)

	require.Same(t, s1, r.Search("*a*"))
	require.Nil(t, r.Search("*missing*"))
}

func TestRegistryCloseRepointsCurrent(t *testing.T) {
	var r Registry

	s1, err := r.Open("*one*", ModeRead|ModeWrite, false)
	require.NoError(t, err)
	s2, err := r.Open("*two*", ModeRead|ModeWrite, false)
	require.NoError(t, err)

	// Opening without setCurrent=true only sets current on the first
	// space; s1 is current, s2 is merely linked in ahead of it.
	require.Same(t, s1, r.Current())

	require.NoError(t, r.Close(s1))
	require.Same(t, s2, r.Current(), "closing the current space repoints current to the new head")

	require.NoError(t, r.Close(s2))
	require.Nil(t, r.Current(), "closing the last space leaves current nil")
}

func TestRegistrySearchByID(t *testing.T) {
	var r Registry
	s, err := r.Open("*id*", ModeRead|ModeWrite, false)
	require.NoError(t, err)
	require.Same(t, s, r.SearchByID(s.ID()))
	require.Nil(t, r.SearchByID(s.ID()+1))
}

func TestRegistryMapAndIteration(t *testing.T) {
	var r Registry
	_, _ = r.Open("*a*", ModeRead|ModeWrite, false)
	_, _ = r.Open("*b*", ModeRead|ModeWrite, false)
	_, _ = r.Open("*c*", ModeRead|ModeWrite, false)

	var handlers []string
	r.Map(func(s *Space) bool {
		handlers = append(handlers, s.Handler())
		return true
	})
	require.Equal(t, []string{"*c*", "*b*", "*a*"}, handlers)

	count := 0
	for s := r.Begin(); !r.End(s); s = r.Next(s) {
		count++
	}
	require.Equal(t, 3, count)
}

func TestRegistryReadOnlyFileRejectsWrite(t *testing.T) {
	var r Registry
	path := filepath.Join(t.TempDir(), "ro.dat")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0o644))

	s, err := r.Open(path, ModeRead, true)
	require.NoError(t, err)

	err = s.WriteUint(0, 8, MSB, 0, 0xFF)
	require.Equal(t, ErrOffset, CodeOf(err))
}

func TestRegistryCloseAll(t *testing.T) {
	var r Registry
	_, _ = r.Open("*a*", ModeRead|ModeWrite, false)
	_, _ = r.Open("*b*", ModeRead|ModeWrite, false)
	r.CloseAll()
	require.Nil(t, r.Current())
	require.Nil(t, r.Begin())
}
