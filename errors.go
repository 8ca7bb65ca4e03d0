package proj

import (
	"errors"
	"fmt"
)

var errProjectionClosed = errors.New("proj: projection is closed")

// DefinitionError reports that libproj rejected a transformation or
// projection definition string.
type DefinitionError struct {
	Definition string // the rejected definition, if one was passed to libproj
	Code       int    // native error code, 0 if the definition never reached libproj
	Message    string
}

func (e *DefinitionError) Error() string {
	if e.Definition == "" {
		return fmt.Sprintf("proj: invalid definition: %s", e.Message)
	}
	return fmt.Sprintf("proj: invalid definition %q: %s (errno %d)", e.Definition, e.Message, e.Code)
}

// CRSLookupError reports that a pipeline between two named coordinate
// reference systems could not be built, usually because one of the
// identifiers is unknown to the PROJ database.
type CRSLookupError struct {
	Source  string
	Target  string
	Code    int
	Message string
}

func (e *CRSLookupError) Error() string {
	return fmt.Sprintf("proj: cannot build a pipeline from %q to %q: %s", e.Source, e.Target, e.Message)
}

// ProjectionError reports a projection call that left a non-zero error
// state. For bulk operations Index is the offset of the first failing
// element; it is -1 for single-point calls. Elements before Index have
// already been transformed in place.
type ProjectionError struct {
	Code    int
	Message string
	Index   int
}

func (e *ProjectionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("proj: projection failed at element %d: %s (errno %d)", e.Index, e.Message, e.Code)
	}
	return fmt.Sprintf("proj: projection failed: %s (errno %d)", e.Message, e.Code)
}

// ConversionError reports a conversion call that left a non-zero error
// state. Index behaves as in ProjectionError.
type ConversionError struct {
	Code    int
	Message string
	Index   int
}

func (e *ConversionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("proj: conversion failed at element %d: %s (errno %d)", e.Index, e.Message, e.Code)
	}
	return fmt.Sprintf("proj: conversion failed: %s (errno %d)", e.Message, e.Code)
}

// DefinitionRetrievalError reports that libproj could not serialize a
// transformation object back into a proj-string.
type DefinitionRetrievalError struct{}

func (e *DefinitionRetrievalError) Error() string {
	return "proj: the transformation cannot be serialized back to a definition"
}

// ContextError reports a thread context that could not be created. There
// is no recovery: construction of the owning transformation is aborted.
type ContextError struct {
	Op      string
	Message string
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("proj: thread context %s failed: %s", e.Op, e.Message)
}

// ConfigurationError reports invalid network, cache or search path
// configuration before it reaches libproj.
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("proj: invalid %s configuration: %s", e.Setting, e.Message)
}
