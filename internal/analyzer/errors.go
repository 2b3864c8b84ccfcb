package analyzer

import "errors"

// ErrInvalidDomain is returned when the input cannot be parsed as a domain name
var ErrInvalidDomain = errors.New("invalid domain")
