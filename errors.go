package tiledraw

import "errors"

var (
	// ErrInvalidOptions is returned when a backend is built without one of
	// its required collaborators.
	ErrInvalidOptions = errors.New("tiledraw: invalid backend options")

	// ErrMissingOperation is returned when a backend assembled from
	// functions lacks a required operation.
	ErrMissingOperation = errors.New("tiledraw: backend does not implement a required operation")

	// ErrDestroyed is returned by Draw and Clear after Destroy.
	ErrDestroyed = errors.New("tiledraw: backend is destroyed")

	// ErrBackendNotAvailable is returned when no backend is registered
	// under the requested name.
	ErrBackendNotAvailable = errors.New("tiledraw: backend not available")

	// ErrLoopRunning is returned by RenderLoop.Start when the loop is
	// already running.
	ErrLoopRunning = errors.New("tiledraw: render loop is already running")
)
