package skos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every lookup miss, see IsNotFound.
var ErrNotFound = errors.New("not found")

// NotFoundError is returned by container and loader lookups of an absent URI.
type NotFoundError struct {
	URI string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("skos: %q not found", e.URI)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound check if error is related to a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ConfigurationError is returned for invalid loader options. It is raised
// before any I/O takes place.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("skos: invalid %s: %s", e.Field, e.Reason)
}

// MissingFieldError is returned when a typed subject lacks a required field.
// It aborts the load.
type MissingFieldError struct {
	Type  string
	URI   string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("skos: %s <%s> has no %s", e.Type, e.URI, e.Field)
}

// RecursionLimitError reports references that were left unresolved because
// the maximum resolution depth was reached. The load continues without them.
type RecursionLimitError struct {
	Depth int
	URIs  []string
}

func (e *RecursionLimitError) Error() string {
	const show = 3
	uris := e.URIs
	more := ""
	if len(uris) > show {
		more = fmt.Sprintf(" and %d more", len(uris)-show)
		uris = uris[:show]
	}
	return fmt.Sprintf("skos: recursion limit %d reached, not following %s%s",
		e.Depth, strings.Join(uris, ", "), more)
}
