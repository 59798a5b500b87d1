package readiness

// SurfaceHandle refers to a surface owned by the host.
type SurfaceHandle struct {
	ID   string
	Name string
}

// Host is the display shell that owns the surfaces.
type Host interface {
	FindSurface(name string) (SurfaceHandle, bool)
	Hide(SurfaceHandle) error
	Show(SurfaceHandle) error
}

// Surfaces names the two surfaces swapped by Transition.
type Surfaces struct {
	Loading string
	Main    string
}

// DefaultSurfaces returns the surface names used when none are configured.
func DefaultSurfaces() Surfaces {
	return Surfaces{Loading: "loading", Main: "main"}
}

// Transition hides the loading surface and reveals the main one, stopping at the
// first failed step. The gate guarantees it runs once, after both tasks are done.
func Transition(host Host, names Surfaces) error {
	loading, ok := host.FindSurface(names.Loading)
	if !ok {
		return &SurfaceError{Surface: names.Loading, Op: "find", Kind: ErrSurfaceNotFound}
	}
	if err := host.Hide(loading); err != nil {
		return &SurfaceError{Surface: names.Loading, Op: "hide", Kind: ErrSurfaceOperationFailed, Err: err}
	}
	primary, ok := host.FindSurface(names.Main)
	if !ok {
		return &SurfaceError{Surface: names.Main, Op: "find", Kind: ErrSurfaceNotFound}
	}
	if err := host.Show(primary); err != nil {
		return &SurfaceError{Surface: names.Main, Op: "show", Kind: ErrSurfaceOperationFailed, Err: err}
	}
	return nil
}
