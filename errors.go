package throttle

import (
	"errors"

	"github.com/RelayOne/throttle/internal/store"
)

var (
	// ErrInvalidMax is an exported constant or variable used by the rate limiting engine.
	ErrInvalidMax = errors.New("max must be > 0")
	// ErrInvalidWindow is an exported constant or variable used by the rate limiting engine.
	ErrInvalidWindow = errors.New("window must be > 0")
	// ErrStoreUnavailable is an exported constant or variable used by the rate limiting engine.
	//
	// It is the sentinel wrapped by every shared-store failure. Those failures never
	// reach callers of Check; the sentinel is public for custom tooling and log matching.
	ErrStoreUnavailable = store.ErrUnavailable
	// ErrBuilderUsed is an exported constant or variable used by the rate limiting engine.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrUnknownPreset is an exported constant or variable used by the rate limiting engine.
	ErrUnknownPreset = errors.New("unknown policy preset")
)
