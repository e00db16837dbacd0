// Package domain defines error types for the inventory system.
package domain

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when no product with the given SKU exists
type NotFoundError struct {
	SKU string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: sku=%s", e.SKU)
}

// Is allows proper error type checking with errors.Is()
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError is returned when a product field fails validation
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// DuplicateSKUError is returned when adding a product whose SKU is already indexed
type DuplicateSKUError struct {
	SKU string
}

// Error implements the error interface for DuplicateSKUError
func (e *DuplicateSKUError) Error() string {
	return fmt.Sprintf("duplicate product: sku=%s already exists", e.SKU)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateSKUError) Is(target error) bool {
	_, ok := target.(*DuplicateSKUError)
	return ok
}

// UnknownTypeError is returned when a serialized line carries an unrecognized type tag
type UnknownTypeError struct {
	Tag string
}

// Error implements the error interface for UnknownTypeError
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown product type: tag=%q", e.Tag)
}

// Is allows proper error type checking with errors.Is()
func (e *UnknownTypeError) Is(target error) bool {
	_, ok := target.(*UnknownTypeError)
	return ok
}

// Helper functions for creating errors with context

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(sku string) error {
	return &NotFoundError{SKU: sku}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, reason string, value interface{}) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewDuplicateSKUError creates a new DuplicateSKUError
func NewDuplicateSKUError(sku string) error {
	return &DuplicateSKUError{SKU: sku}
}

// NewUnknownTypeError creates a new UnknownTypeError
func NewUnknownTypeError(tag string) error {
	return &UnknownTypeError{Tag: tag}
}

// Type assertion helpers for use with errors.As()

// IsNotFoundError checks if an error is a NotFoundError
func IsNotFoundError(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicateSKUError checks if an error is a DuplicateSKUError
func IsDuplicateSKUError(err error) bool {
	var dse *DuplicateSKUError
	return errors.As(err, &dse)
}

// IsUnknownTypeError checks if an error is an UnknownTypeError
func IsUnknownTypeError(err error) bool {
	var ute *UnknownTypeError
	return errors.As(err, &ute)
}
