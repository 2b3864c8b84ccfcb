package rdap

import "errors"

var (
	// ErrEmptyDomain is returned when an empty domain is provided for lookup
	ErrEmptyDomain = errors.New("domain must not be empty")
	// ErrUnexpectedObject is returned when the RDAP response is not a domain object
	ErrUnexpectedObject = errors.New("RDAP response is not a domain object")
)
