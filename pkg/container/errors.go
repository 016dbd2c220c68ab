package container

import (
	"fmt"
	"strings"
)

// Error codes used by ContainerError.
const (
	CodeDuplicateName        = "DUPLICATE_NAME"
	CodeAlreadySealed        = "ALREADY_SEALED"
	CodeUnresolvedDependency = "UNRESOLVED_DEPENDENCY"
	CodeAmbiguousDependency  = "AMBIGUOUS_DEPENDENCY"
	CodeCyclicDependency     = "CYCLIC_DEPENDENCY"
	CodeComponentInitFailed  = "COMPONENT_INIT_FAILED"
	CodeFactoryInitFailed    = "FACTORY_INIT_FAILED"
	CodeComponentNotFound    = "COMPONENT_NOT_FOUND"
	CodeTypeMismatch         = "TYPE_MISMATCH"
	CodeNotBuilt             = "CONTAINER_NOT_BUILT"
	CodeInvalidKey           = "INVALID_KEY"
	CodeConfiguration        = "CONFIGURATION_ERROR"
)

// ContainerError represents an error that occurred in the container
type ContainerError struct {
	Code    string
	Message string
	Cause   error
	// Path holds the offending dependency chain for cyclic dependency errors
	Path []string
}

// Error implements the error interface
func (e *ContainerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *ContainerError) Unwrap() error {
	return e.Cause
}

// DuplicateNameError returns an error for when a component name is already taken
func DuplicateNameError(name string) *ContainerError {
	return &ContainerError{
		Code:    CodeDuplicateName,
		Message: fmt.Sprintf("component with name '%s' already registered", name),
	}
}

// AlreadySealedError returns an error for when a registration is attempted after sealing
func AlreadySealedError() *ContainerError {
	return &ContainerError{
		Code:    CodeAlreadySealed,
		Message: "registry is sealed, no further registrations accepted",
	}
}

// UnresolvedDependencyError returns an error for when a request matches no
// component. subject identifies the requester, e.g. "component 'garage'".
func UnresolvedDependencyError(subject, want string) *ContainerError {
	return &ContainerError{
		Code:    CodeUnresolvedDependency,
		Message: fmt.Sprintf("%s requires %s but no matching component is registered", subject, want),
	}
}

// AmbiguousDependencyError returns an error for when a scalar request matches several components
func AmbiguousDependencyError(subject, want string, matches []string) *ContainerError {
	return &ContainerError{
		Code:    CodeAmbiguousDependency,
		Message: fmt.Sprintf("%s requires exactly one %s but found %d: %s",
			subject, want, len(matches), strings.Join(matches, ", ")),
	}
}

// CyclicDependencyError returns an error for when the dependency graph contains a cycle
func CyclicDependencyError(message string, path []string) *ContainerError {
	return &ContainerError{
		Code:    CodeCyclicDependency,
		Message: message,
		Path:    path,
	}
}

// ComponentInitError returns an error for when a component fails to construct or configure itself
func ComponentInitError(name string, err error) *ContainerError {
	return &ContainerError{
		Code:    CodeComponentInitFailed,
		Message: fmt.Sprintf("component '%s' failed to initialize", name),
		Cause:   err,
	}
}

// FactoryInitError returns an error for when a manually registered factory fails
func FactoryInitError(name string, err error) *ContainerError {
	return &ContainerError{
		Code:    CodeFactoryInitFailed,
		Message: fmt.Sprintf("factory for component '%s' failed", name),
		Cause:   err,
	}
}

// ComponentNotFoundError returns an error for when a component lookup misses
func ComponentNotFoundError(key string) *ContainerError {
	return &ContainerError{
		Code:    CodeComponentNotFound,
		Message: fmt.Sprintf("component '%s' not found", key),
	}
}

// TypeMismatchError returns an error for when a named component has an unexpected type
func TypeMismatchError(subject, name, expected string) *ContainerError {
	return &ContainerError{
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("%s requires '%s' to satisfy %s but it does not", subject, name, expected),
	}
}

// NotBuiltError returns an error for when a lookup happens before Build
func NotBuiltError() *ContainerError {
	return &ContainerError{
		Code:    CodeNotBuilt,
		Message: "container has not been built yet",
	}
}

// InvalidKeyError returns an error for when a lookup key is neither a name nor a type
func InvalidKeyError(key any) *ContainerError {
	return &ContainerError{
		Code:    CodeInvalidKey,
		Message: fmt.Sprintf("unsupported lookup key type %T, expected string or reflect.Type", key),
	}
}

// ConfigurationError returns an error for when configuration is invalid
func ConfigurationError(msg string, cause error) *ContainerError {
	return &ContainerError{
		Code:    CodeConfiguration,
		Message: msg,
		Cause:   cause,
	}
}
