package config

import "errors"

var (
	// ErrConfigRead is returned when a configuration source cannot be read
	ErrConfigRead = errors.New("failed to read configuration")
	// ErrConfigUnmarshal is returned when config unmarshalling fails
	ErrConfigUnmarshal = errors.New("failed to unmarshal configuration")
	// ErrUnsupportedSecurityAssessor is returned for an unknown analysis.security value
	ErrUnsupportedSecurityAssessor = errors.New("unsupported security assessor")
	// ErrUnsupportedValueAssessor is returned for an unknown analysis.value value
	ErrUnsupportedValueAssessor = errors.New("unsupported value assessor")
	// ErrBlocklistRequiresIntel is returned when the blocklist assessor is selected without intel enabled
	ErrBlocklistRequiresIntel = errors.New("blocklist security assessor requires intel.enabled")
	// ErrInvalidConcurrency is returned when batch concurrency is below one
	ErrInvalidConcurrency = errors.New("analysis concurrency must be at least 1")
	// ErrInvalidRateLimit is returned when the batch rate limit is negative
	ErrInvalidRateLimit = errors.New("analysis rate limit must not be negative")
)
