package feedback

import "errors"

var (
	// ErrNotFound is returned for status updates against a feedback
	// record that does not exist.
	ErrNotFound = errors.New("feedback not found")

	// ErrNoSuggestions means the model produced zero usable suggestions;
	// nothing is persisted in that case.
	ErrNoSuggestions = errors.New("no suggestions generated")

	// ErrSchemaMismatch means the model's JSON carried none of the
	// accepted suggestion-list keys.
	ErrSchemaMismatch = errors.New("unrecognized suggestion response shape")

	// ErrInvalidIndex means the suggestion index is out of range for the
	// record.
	ErrInvalidIndex = errors.New("suggestion index out of range")

	// ErrInvalidStatus means the target status is not an accepted value.
	ErrInvalidStatus = errors.New("invalid suggestion status")

	// ErrUpstream wraps inference-provider failures.
	ErrUpstream = errors.New("inference provider failure")
)
