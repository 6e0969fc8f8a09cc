package domain

import "strings"

// Platform selects the launch convention used for an editor
type Platform int

const (
	PlatformOther Platform = iota
	PlatformMacOS
	PlatformWindows
)

func (p Platform) String() string {
	switch p {
	case PlatformMacOS:
		return "macOS"
	case PlatformWindows:
		return "Windows"
	default:
		return "Other"
	}
}

// PlatformFromGOOS maps a runtime.GOOS value to a Platform
func PlatformFromGOOS(goos string) Platform {
	switch strings.ToLower(goos) {
	case "darwin", "ios":
		return PlatformMacOS
	case "windows":
		return PlatformWindows
	default:
		return PlatformOther
	}
}

// ParsePlatform accepts either a GOOS value or a Platform name ("macos", "other")
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "macos", "mac", "darwin":
		return PlatformMacOS, true
	case "windows", "win":
		return PlatformWindows, true
	case "other", "linux", "freebsd", "openbsd", "netbsd":
		return PlatformOther, true
	}
	return PlatformOther, false
}

// LaunchMode selects how editors are spawned on Windows and other non-macOS platforms
type LaunchMode string

const (
	// LaunchModeExec spawns the editor directly with the vault as working directory
	LaunchModeExec LaunchMode = "exec"
	// LaunchModeShell runs "cd <vault> && <editor> ./<file>" through the platform shell
	LaunchModeShell LaunchMode = "shell"
)

// ParseLaunchMode returns LaunchModeExec for anything other than "shell"
func ParseLaunchMode(s string) LaunchMode {
	if strings.EqualFold(strings.TrimSpace(s), string(LaunchModeShell)) {
		return LaunchModeShell
	}
	return LaunchModeExec
}
