package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func NewResourceNotFoundError(kind string, id ...string) *ResourceNotFoundError {
	e := &ResourceNotFoundError{Kind: kind}
	if len(id) > 0 {
		e.ID = id[0]
	}
	return e
}

func NewProfileNotFoundError(name string) *ResourceNotFoundError {
	return NewResourceNotFoundError("profile", name)
}

func NewScenarioNotFoundError(id string) *ResourceNotFoundError {
	return NewResourceNotFoundError("scenario", id)
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// NoProfileSelectedError is returned by sizing when no node profile was given.
type NoProfileSelectedError struct{}

func NewNoProfileSelectedError() *NoProfileSelectedError {
	return &NoProfileSelectedError{}
}

func (e *NoProfileSelectedError) Error() string {
	return "no node profile selected"
}

func IsNoProfileSelectedError(err error) bool {
	var e *NoProfileSelectedError
	return errors.As(err, &e)
}

// EmptyInventoryError is returned by sizing when no VM contributes to demand.
type EmptyInventoryError struct{}

func NewEmptyInventoryError() *EmptyInventoryError {
	return &EmptyInventoryError{}
}

func (e *EmptyInventoryError) Error() string {
	return "inventory has no eligible vms"
}

func IsEmptyInventoryError(err error) bool {
	var e *EmptyInventoryError
	return errors.As(err, &e)
}

// InvalidConfigError wraps one or more sizing or server configuration violations.
type InvalidConfigError struct {
	Violations []string
}

func NewInvalidConfigError(violations ...string) *InvalidConfigError {
	return &InvalidConfigError{Violations: violations}
}

func (e *InvalidConfigError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid configuration"
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Violations, "; "))
}

func IsInvalidConfigError(err error) bool {
	var e *InvalidConfigError
	return errors.As(err, &e)
}

// InvalidFilterError indicates the scope expression could not be parsed.
type InvalidFilterError struct {
	Expression string
	err        error
}

func NewInvalidFilterError(expr string, err error) *InvalidFilterError {
	return &InvalidFilterError{Expression: expr, err: err}
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid scope %q: %s", e.Expression, e.err)
}

func (e *InvalidFilterError) Unwrap() error {
	return e.err
}

func IsInvalidFilterError(err error) bool {
	var e *InvalidFilterError
	return errors.As(err, &e)
}

// InventoryImportError indicates the uploaded inventory file is unusable.
type InventoryImportError struct {
	msg string
}

func NewInventoryImportError(format string, args ...any) *InventoryImportError {
	return &InventoryImportError{msg: fmt.Sprintf(format, args...)}
}

func (e *InventoryImportError) Error() string {
	return fmt.Sprintf("inventory import: %s", e.msg)
}

func IsInventoryImportError(err error) bool {
	var e *InventoryImportError
	return errors.As(err, &e)
}

// UnauthorizedError indicates the request carried no valid bearer token.
type UnauthorizedError struct {
	reason string
}

func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.reason)
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

// UnsatisfiableDemandError is returned by sizing when a resource needs more
// nodes than can be counted.
type UnsatisfiableDemandError struct {
	Resource string
}

func NewUnsatisfiableDemandError(resource string) *UnsatisfiableDemandError {
	return &UnsatisfiableDemandError{Resource: resource}
}

func (e *UnsatisfiableDemandError) Error() string {
	return fmt.Sprintf("%s demand cannot be satisfied by the selected profile", e.Resource)
}

func IsUnsatisfiableDemandError(err error) bool {
	var e *UnsatisfiableDemandError
	return errors.As(err, &e)
}
