package platform

import (
	"runtime"

	"othereditor/internal/domain"
	"othereditor/internal/ports"
)

// Probe reports the platform of the running process, unless overridden
type Probe struct {
	platform domain.Platform
}

// Ensure Probe implements PlatformProbe
var _ ports.PlatformProbe = Probe{}

// NewProbe detects the platform from runtime.GOOS
func NewProbe() Probe {
	return Probe{platform: domain.PlatformFromGOOS(runtime.GOOS)}
}

// Fixed returns a probe that always reports p
func Fixed(p domain.Platform) Probe {
	return Probe{platform: p}
}

// FromName returns a probe for a platform name such as "macos" or "windows".
// An empty name detects the running platform.
func FromName(name string) (Probe, error) {
	if name == "" {
		return NewProbe(), nil
	}
	p, ok := domain.ParsePlatform(name)
	if !ok {
		return Probe{}, &domain.ValidationError{Field: "platform", Message: "unknown platform " + name}
	}
	return Fixed(p), nil
}

// Current returns the platform
func (p Probe) Current() domain.Platform {
	return p.platform
}
