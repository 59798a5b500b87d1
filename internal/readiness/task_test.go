package readiness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	t.Parallel()
	cases := map[string]Task{
		"frontend":   Frontend,
		"backend":    Backend,
		" Frontend ": Frontend,
		"BACKEND":    Backend,
	}
	for in, want := range cases {
		got, err := ParseTask(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestParseTaskSuggestsNearestName(t *testing.T) {
	t.Parallel()
	_, err := ParseTask("frontnd")
	require.ErrorIs(t, err, ErrInvalidTask)
	require.Contains(t, err.Error(), `did you mean "frontend"?`)

	_, err = ParseTask("bakend")
	require.ErrorIs(t, err, ErrInvalidTask)
	require.Contains(t, err.Error(), `did you mean "backend"?`)

	_, err = ParseTask("database")
	require.ErrorIs(t, err, ErrInvalidTask)
	require.NotContains(t, err.Error(), "did you mean")

	_, err = ParseTask("")
	require.ErrorIs(t, err, ErrInvalidTask)
}

func TestTaskString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "frontend", Frontend.String())
	require.Equal(t, "backend", Backend.String())
	require.Equal(t, "task(9)", Task(9).String())
	require.False(t, Task(0).Valid())
}

func TestStateMarkReportsCompletionOnce(t *testing.T) {
	t.Parallel()
	var s State
	require.False(t, s.mark(Frontend))
	require.False(t, s.mark(Frontend))
	require.True(t, s.mark(Backend))
	require.False(t, s.mark(Backend))
	require.False(t, s.mark(Frontend))
	require.True(t, s.Complete())
}
