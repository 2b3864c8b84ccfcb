package scanner

import "errors"

var (
	// ErrNoCertificate is returned when a TLS handshake completes without a peer certificate
	ErrNoCertificate = errors.New("no peer certificate presented")
	// ErrBothSchemesFailed is returned when neither http nor https produced a response
	ErrBothSchemesFailed = errors.New("http and https requests both failed")
)
