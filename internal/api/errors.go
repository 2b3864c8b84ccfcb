package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrInputRequired is returned when none of domain, email or query is provided
	ErrInputRequired = errors.New("domain, email or query required")
	// ErrInvalidEmailFormat is returned when the email address format is invalid
	ErrInvalidEmailFormat = errors.New("invalid email format")
	// ErrNoDomainFound is returned when a free-text query mentions no domain
	ErrNoDomainFound = errors.New("no domain found in query")
	// ErrDomainsRequired is returned when a batch request lists no domains
	ErrDomainsRequired = errors.New("at least one domain required")
	// ErrBatchTooLarge is returned when a batch request exceeds the configured limit
	ErrBatchTooLarge = errors.New("too many domains in batch")
	// ErrTextRequired is returned when an extract request has no text
	ErrTextRequired = errors.New("text required")
	// ErrIntelNotConfigured is returned when the intel manager is nil
	ErrIntelNotConfigured = errors.New("intel manager not configured")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
)
