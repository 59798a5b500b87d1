package readiness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubHost struct {
	surfaces map[string]bool // name -> visible
	hideErr  error
	showErr  error
	ops      []string
}

func newStubHost(names ...string) *stubHost {
	h := &stubHost{surfaces: map[string]bool{}}
	for _, n := range names {
		h.surfaces[n] = n == "loading"
	}
	return h
}

func (h *stubHost) FindSurface(name string) (SurfaceHandle, bool) {
	h.ops = append(h.ops, "find "+name)
	if _, ok := h.surfaces[name]; !ok {
		return SurfaceHandle{}, false
	}
	return SurfaceHandle{ID: name, Name: name}, true
}

func (h *stubHost) Hide(s SurfaceHandle) error {
	h.ops = append(h.ops, "hide "+s.Name)
	if h.hideErr != nil {
		return h.hideErr
	}
	h.surfaces[s.Name] = false
	return nil
}

func (h *stubHost) Show(s SurfaceHandle) error {
	h.ops = append(h.ops, "show "+s.Name)
	if h.showErr != nil {
		return h.showErr
	}
	h.surfaces[s.Name] = true
	return nil
}

func TestTransitionOrder(t *testing.T) {
	t.Parallel()
	h := newStubHost("loading", "main")
	require.NoError(t, Transition(h, DefaultSurfaces()))
	require.Equal(t, []string{"find loading", "hide loading", "find main", "show main"}, h.ops)
	require.False(t, h.surfaces["loading"])
	require.True(t, h.surfaces["main"])
}

func TestTransitionFailures(t *testing.T) {
	t.Parallel()
	hostErr := errors.New("window gone")
	cases := []struct {
		name    string
		host    *stubHost
		kind    error
		surface string
		ops     []string
	}{
		{
			name:    "missing loading",
			host:    newStubHost("main"),
			kind:    ErrSurfaceNotFound,
			surface: "loading",
			ops:     []string{"find loading"},
		},
		{
			name:    "hide fails",
			host:    &stubHost{surfaces: map[string]bool{"loading": true, "main": false}, hideErr: hostErr},
			kind:    ErrSurfaceOperationFailed,
			surface: "loading",
			ops:     []string{"find loading", "hide loading"},
		},
		{
			name:    "missing main",
			host:    newStubHost("loading"),
			kind:    ErrSurfaceNotFound,
			surface: "main",
			ops:     []string{"find loading", "hide loading", "find main"},
		},
		{
			name:    "show fails",
			host:    &stubHost{surfaces: map[string]bool{"loading": true, "main": false}, showErr: hostErr},
			kind:    ErrSurfaceOperationFailed,
			surface: "main",
			ops:     []string{"find loading", "hide loading", "find main", "show main"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Transition(tc.host, DefaultSurfaces())
			require.ErrorIs(t, err, tc.kind)
			var se *SurfaceError
			require.True(t, errors.As(err, &se))
			require.Equal(t, tc.surface, se.Surface)
			require.Equal(t, tc.ops, tc.host.ops)
			if tc.kind == ErrSurfaceOperationFailed {
				require.ErrorIs(t, err, hostErr)
			}
			require.False(t, tc.host.surfaces["main"])
		})
	}
}

func TestTransitionCustomNames(t *testing.T) {
	t.Parallel()
	h := newStubHost("splashscreen", "main")
	err := Transition(h, Surfaces{Loading: "loading", Main: "main"})
	require.ErrorIs(t, err, ErrSurfaceNotFound)

	h = newStubHost("splashscreen", "main")
	require.NoError(t, Transition(h, Surfaces{Loading: "splashscreen", Main: "main"}))
	require.True(t, h.surfaces["main"])
}
