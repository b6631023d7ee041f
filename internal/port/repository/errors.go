package repository

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrConditionFailed is returned by conditional updates whose guard no
	// longer matches, e.g. resolving a post that is not active.
	ErrConditionFailed = errors.New("update condition not met")
)
