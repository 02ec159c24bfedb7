package core

import (
	"errors"
	"fmt"
)

// Error kinds - every failed computation wraps exactly one of these
var (
	// ErrDomain means an input violates a mathematical precondition
	ErrDomain = errors.New("domain error")

	// ErrUndefinedStatistic means the statistic does not exist for the inputs
	ErrUndefinedStatistic = errors.New("undefined statistic")

	// ErrToleranceViolation means an expected identity failed beyond tolerance
	ErrToleranceViolation = errors.New("tolerance violation")
)

// StatError records which computation failed, on what input, and why.
type StatError struct {
	Kind   error  // one of ErrDomain, ErrUndefinedStatistic, ErrToleranceViolation
	Op     string // computation that rejected the input, e.g. "binomial.pmf"
	Detail string // offending input in plain words
}

func (e *StatError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *StatError) Unwrap() error {
	return e.Kind
}

// NewDomainError reports an input outside the operation's valid domain
func NewDomainError(op, format string, args ...interface{}) error {
	return &StatError{Kind: ErrDomain, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// NewUndefinedError reports a statistic that cannot be computed for the inputs
func NewUndefinedError(op, format string, args ...interface{}) error {
	return &StatError{Kind: ErrUndefinedStatistic, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// NewToleranceError reports an identity that did not hold within tolerance
func NewToleranceError(op, format string, args ...interface{}) error {
	return &StatError{Kind: ErrToleranceViolation, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Error checking helpers
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

func IsUndefinedStatistic(err error) bool {
	return errors.Is(err, ErrUndefinedStatistic)
}

func IsToleranceViolation(err error) bool {
	return errors.Is(err, ErrToleranceViolation)
}

// KindOf returns the taxonomy sentinel carried by err, or nil
func KindOf(err error) error {
	switch {
	case IsDomainError(err):
		return ErrDomain
	case IsUndefinedStatistic(err):
		return ErrUndefinedStatistic
	case IsToleranceViolation(err):
		return ErrToleranceViolation
	default:
		return nil
	}
}
