package analysis

import (
	"fmt"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

// Severity separates hard errors from integrity warnings
type Severity int

const (
	// SeverityWarning is surfaced to the user but does not by itself fail structure checks
	SeverityWarning Severity = iota
	// SeverityError marks a structural problem
	SeverityError
)

// String returns the lowercase severity name
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText lets formatters print the severity by name
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NoStep is the StepIndex of recipe-wide reasons
const NoStep = -1

// Reason is one diagnostic produced by an analysis phase
type Reason struct {
	Severity  Severity         `json:"severity" yaml:"severity"`
	Code      errors.ErrorCode `json:"code" yaml:"code"`
	StepIndex int              `json:"step_index" yaml:"step_index"`
	Message   string           `json:"message" yaml:"message"`
}

// IsError reports whether the reason is error-kind
func (r Reason) IsError() bool {
	return r.Severity == SeverityError
}

// String formats the reason for display
func (r Reason) String() string {
	if r.StepIndex == NoStep {
		return fmt.Sprintf("%s [%s] %s", r.Severity, r.Code, r.Message)
	}
	return fmt.Sprintf("%s [%s] step %d: %s", r.Severity, r.Code, r.StepIndex, r.Message)
}

func warningAt(step int, code errors.ErrorCode, format string, args ...any) Reason {
	return Reason{Severity: SeverityWarning, Code: code, StepIndex: step, Message: fmt.Sprintf(format, args...)}
}

func errorAt(step int, code errors.ErrorCode, format string, args ...any) Reason {
	return Reason{Severity: SeverityError, Code: code, StepIndex: step, Message: fmt.Sprintf(format, args...)}
}
