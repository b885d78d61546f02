package container

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ── Sentinels ─────────────────────────────────────────────────────────────────

// Every failure the container itself reports from Make / Alias matches
// exactly one of these with errors.Is. The typed errors below carry the
// diagnostics. Errors from user factories are wrapped instead.
var (
	// ErrClassNotFound: the abstract has no binding and names no defined type.
	ErrClassNotFound = errors.New("container: class not found")

	// ErrBindingResolution: a constructor parameter could not be satisfied.
	ErrBindingResolution = errors.New("container: binding resolution failed")

	// ErrCircularDependency: an abstract was requested while already being built.
	ErrCircularDependency = errors.New("container: circular dependency")

	// ErrDepthExceeded: the resolution stack grew past the configured bound.
	ErrDepthExceeded = errors.New("container: resolution depth exceeded")

	// ErrLogic: a registration was rejected (alias cycles, aliasing a bound name).
	ErrLogic = errors.New("container: logic error")
)

// ── Typed errors ──────────────────────────────────────────────────────────────

// ClassNotFoundError mirrors Laravel's "Target class [X] does not exist".
type ClassNotFoundError struct {
	Abstract string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("container: target [%s] is not bound and is not a defined type", e.Abstract)
}

func (e *ClassNotFoundError) Is(target error) bool { return target == ErrClassNotFound }

// BindingResolutionError is returned when a recipe parameter has no matching
// binding, no contextual value, no override and no default.
//
//	// Laravel: Unresolvable dependency resolving [Parameter #0 [ <required> $name ]] in class Greeter
type BindingResolutionError struct {
	Abstract string // type being built
	Param    string // offending parameter name
	Type     string // identifier the parameter is typed as, empty for primitives
}

func (e *BindingResolutionError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("container: unresolvable dependency [$%s] of type [%s] while building [%s]", e.Param, e.Type, e.Abstract)
	}
	return fmt.Sprintf("container: unresolvable dependency [$%s] while building [%s]", e.Param, e.Abstract)
}

func (e *BindingResolutionError) Is(target error) bool { return target == ErrBindingResolution }

// CircularDependencyError carries the cycle in stack order, starting and
// ending with the re-entered abstract: A -> B -> C -> A.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return "container: circular dependency detected: " + strings.Join(e.Path, " -> ")
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// DepthExceededError is returned when WithMaxDepth is set and a resolution
// would push past it.
type DepthExceededError struct {
	Abstract string
	Depth    int
	Stack    []string
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("container: resolving [%s] exceeds max depth %d (%s)",
		e.Abstract, e.Depth, strings.Join(e.Stack, " -> "))
}

func (e *DepthExceededError) Is(target error) bool { return target == ErrDepthExceeded }

// LogicError is raised at registration time, never from Make.
type LogicError struct {
	Alias  string
	Chain  []string
	Reason string
}

func (e *LogicError) Error() string {
	if len(e.Chain) > 0 {
		return fmt.Sprintf("container: [%s] %s (%s)", e.Alias, e.Reason, strings.Join(e.Chain, " -> "))
	}
	return fmt.Sprintf("container: [%s] %s", e.Alias, e.Reason)
}

func (e *LogicError) Is(target error) bool { return target == ErrLogic }

// isResolutionError reports whether err already carries container diagnostics,
// so factory wrapping does not stack the same message at every level.
func isResolutionError(err error) bool {
	return errors.Is(err, ErrClassNotFound) ||
		errors.Is(err, ErrBindingResolution) ||
		errors.Is(err, ErrCircularDependency) ||
		errors.Is(err, ErrDepthExceeded)
}
