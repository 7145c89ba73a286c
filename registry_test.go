package tiledraw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	assert.True(t, IsRegistered(BackendNull))
	assert.True(t, IsRegistered(BackendImage))
	assert.Subset(t, Available(), []string{BackendImage, BackendNull})

	backend, err := Create(BackendNull, testOptions(squareViewport(), nil))
	require.NoError(t, err)
	assert.IsType(t, &NullBackend{}, backend)
}

func TestCreateUnknownBackend(t *testing.T) {
	backend, err := Create("vulkan", testOptions(squareViewport(), nil))
	assert.Nil(t, backend)
	assert.ErrorIs(t, err, ErrBackendNotAvailable)
	assert.Contains(t, err.Error(), "vulkan")
}

func TestRegisterAndUnregister(t *testing.T) {
	Register("custom", func(opts Options) (Backend, error) {
		return New(opts, completeFuncs())
	})
	assert.True(t, IsRegistered("custom"))
	assert.Contains(t, Available(), "custom")

	backend, err := Create("custom", testOptions(squareViewport(), nil))
	require.NoError(t, err)
	assert.True(t, backend.IsRenderBackend())

	Unregister("custom")
	assert.False(t, IsRegistered("custom"))
}

func TestCreateDefaultPriority(t *testing.T) {
	backend, err := CreateDefault(testOptions(squareViewport(), nil))
	require.NoError(t, err)
	assert.IsType(t, &ImageBackend{}, backend)
}

func TestCreateDefaultFallsBack(t *testing.T) {
	Register(BackendSDL, func(Options) (Backend, error) {
		return nil, errors.New("no display")
	})
	defer Unregister(BackendSDL)

	backend, err := CreateDefault(testOptions(squareViewport(), nil))
	require.NoError(t, err)
	assert.IsType(t, &ImageBackend{}, backend)
}

func TestCreateDefaultValidatesOptions(t *testing.T) {
	backend, err := CreateDefault(Options{})
	assert.Nil(t, backend)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
