package throttle

import (
	"strings"
	"time"
)

var (
	// PresetStandard is an exported constant or variable used by the rate limiting engine.
	PresetStandard = Policy{
		Max:     100,
		Window:  15 * time.Minute,
		Message: "too many requests, please try again later",
	}
	// PresetAuth is an exported constant or variable used by the rate limiting engine.
	PresetAuth = Policy{
		Max:     10,
		Window:  15 * time.Minute,
		Message: "too many authentication attempts, please try again later",
	}
	// PresetStrict is an exported constant or variable used by the rate limiting engine.
	PresetStrict = Policy{
		Max:     5,
		Window:  time.Minute,
		Message: "rate limit exceeded",
	}
	// PresetUpload is an exported constant or variable used by the rate limiting engine.
	PresetUpload = Policy{
		Max:     20,
		Window:  time.Hour,
		Message: "upload limit reached, please try again later",
	}
	// PresetWebhook is an exported constant or variable used by the rate limiting engine.
	PresetWebhook = Policy{
		Max:     60,
		Window:  time.Minute,
		Message: "webhook rate limit exceeded",
	}
)

// Preset describes the preset operation and its observable behavior.
//
// Preset may return an error when input validation, dependency calls, or security checks fail.
// Preset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Preset(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "standard":
		return PresetStandard, nil
	case "auth":
		return PresetAuth, nil
	case "strict":
		return PresetStrict, nil
	case "upload":
		return PresetUpload, nil
	case "webhook":
		return PresetWebhook, nil
	default:
		return Policy{}, ErrUnknownPreset
	}
}
