package services

import "errors"

// Task collection errors.
var (
	ErrMainTaskLimit    = errors.New("main task limit reached")
	ErrNoParentSelected = errors.New("no parent task selected")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotMainTask      = errors.New("parent is not a main task")
	ErrUnknownField     = errors.New("unknown field")
	ErrReadOnlyField    = errors.New("field cannot be edited")
	ErrNegativeValue    = errors.New("value must not be negative")
)

// Document file errors.
var (
	ErrEmptyFile     = errors.New("file is empty or too short")
	ErrInvalidJSON   = errors.New("file contains invalid JSON")
	ErrNotObject     = errors.New("file is not a JSON object")
	ErrOrphanSubTask = errors.New("sub-task references a missing parent")
	ErrReadTimeout   = errors.New("file read timed out")
	ErrNoFilePath    = errors.New("no file path given")
)
