package command

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem/alloc"
)

func newSession(t *testing.T, size int, opts *alloc.Options) *Session {
	t.Helper()
	fa, err := alloc.NewFirstFit(size, opts)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, fa.Close()) })
	return NewSession(fa)
}

func TestSession_Scenario(t *testing.T) {
	s := newSession(t, 10, nil)

	res, err := s.Exec("alloc 4")
	require.NoError(t, err)
	require.Equal(t, 0, res.Offset)
	require.Equal(t, s.Allocator().Base().String(), res.Address)

	res, err = s.Exec("alloc 3")
	require.NoError(t, err)
	require.Equal(t, 4, res.Offset)

	res, err = s.Exec("free +0 4")
	require.NoError(t, err)
	require.Equal(t, 0, res.Offset)

	res, err = s.Exec("status")
	require.NoError(t, err)
	require.Equal(t, "----XXX---", res.Map)

	res, err = s.Exec("alloc 5")
	require.NoError(t, err)
	require.Equal(t, 3, res.Offset)

	res, err = s.Exec("stats")
	require.NoError(t, err)
	require.NotNil(t, res.Stats)
	require.Equal(t, 1, res.Stats.Compactions)
	require.Equal(t, 8, res.Stats.InUse)
}

func TestSession_FreeByAbsoluteAddress(t *testing.T) {
	s := newSession(t, 8, nil)
	res, err := s.Exec("alloc 2")
	require.NoError(t, err)

	_, err = s.Exec(fmt.Sprintf("free %s 2", res.Address))
	require.NoError(t, err)

	res, err = s.Exec("status")
	require.NoError(t, err)
	require.Equal(t, "--------", res.Map)
}

func TestSession_ErrorsAreRecorded(t *testing.T) {
	s := newSession(t, 4, nil)

	res, err := s.Exec("alloc 9")
	require.ErrorIs(t, err, alloc.ErrInvalidSize)
	require.Contains(t, res.Error, "invalid size")

	res, err = s.Exec("free +4 1")
	require.ErrorIs(t, err, alloc.ErrInvalidAddress)
	require.NotEmpty(t, res.Error)

	_, err = s.Exec("free 0x0 1")
	require.ErrorIs(t, err, alloc.ErrInvalidAddress)

	_, err = s.Exec("free zz 1")
	require.ErrorIs(t, err, ErrUsage)

	res, err = s.Exec("bogus")
	require.ErrorIs(t, err, ErrUnknownCommand)
	require.NotEmpty(t, res.Error)

	_, err = s.Run(Command{Kind: Kind(42)})
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestSession_Compact(t *testing.T) {
	s := newSession(t, 6, nil)
	_, err := s.Exec("alloc 2")
	require.NoError(t, err)
	_, err = s.Exec("alloc 2")
	require.NoError(t, err)
	_, err = s.Exec("free +0 2")
	require.NoError(t, err)

	res, err := s.Exec("compact")
	require.NoError(t, err)
	require.Equal(t, 2, res.Moved)

	res, err = s.Exec("status")
	require.NoError(t, err)
	require.Equal(t, "XX----", res.Map)
}

func TestResult_JSON(t *testing.T) {
	s := newSession(t, 4, nil)
	res, err := s.Exec("alloc 2")
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, map[string]any{"kind": "alloc", "size": float64(2)}, decoded["command"])
	require.Equal(t, res.Address, decoded["address"])
	require.NotContains(t, decoded, "error")
}
