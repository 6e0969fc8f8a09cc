package domain

import "fmt"

// OutcomeKind classifies the terminal result of one launch attempt
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeProcessError
	OutcomeConfigurationError
	OutcomeValidationError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeProcessError:
		return "process_error"
	case OutcomeConfigurationError:
		return "configuration_error"
	case OutcomeValidationError:
		return "validation_error"
	default:
		return "unknown"
	}
}

// LaunchOutcome is the result of one launch. A non-zero ExitCode is still a
// success: many editors fork into the background and exit immediately.
type LaunchOutcome struct {
	Kind     OutcomeKind
	ExitCode int
	Signal   string
	Err      error
}

// Succeeded builds a success outcome
func Succeeded(exitCode int, signal string) LaunchOutcome {
	return LaunchOutcome{Kind: OutcomeSuccess, ExitCode: exitCode, Signal: signal}
}

// Failed builds a process error outcome
func Failed(command string, err error) LaunchOutcome {
	return LaunchOutcome{Kind: OutcomeProcessError, ExitCode: -1, Err: &ProcessError{Command: command, Err: err}}
}

// OutcomeFromError classifies an orchestration error into an outcome
func OutcomeFromError(err error) LaunchOutcome {
	switch err.(type) {
	case *ValidationError:
		return LaunchOutcome{Kind: OutcomeValidationError, ExitCode: -1, Err: err}
	case *ConfigurationError:
		return LaunchOutcome{Kind: OutcomeConfigurationError, ExitCode: -1, Err: err}
	default:
		return LaunchOutcome{Kind: OutcomeProcessError, ExitCode: -1, Err: err}
	}
}

// OK reports whether the outcome is a success
func (o LaunchOutcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

func (o LaunchOutcome) String() string {
	if o.OK() {
		if o.Signal != "" {
			return fmt.Sprintf("exited with code %d (signal %s)", o.ExitCode, o.Signal)
		}
		return fmt.Sprintf("exited with code %d", o.ExitCode)
	}
	return fmt.Sprintf("%s: %v", o.Kind, o.Err)
}
