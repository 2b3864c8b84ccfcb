package intel

import "errors"

var (
	// ErrNotHydrated is returned when a check is made before the feeds are hydrated
	ErrNotHydrated = errors.New("blocklist feeds have not been hydrated")
	// ErrNoFeedsDefined is returned when the feed configuration contains no feeds
	ErrNoFeedsDefined = errors.New("feed configuration has no feeds defined")
	// ErrFeedNameRequired is returned when a feed has no name
	ErrFeedNameRequired = errors.New("feed name is required")
	// ErrEmptyIndicatorType is returned when an empty indicator type is provided
	ErrEmptyIndicatorType = errors.New("indicator type cannot be empty")
	// ErrUnsupportedIndicatorType is returned for an unknown indicator type
	ErrUnsupportedIndicatorType = errors.New("unsupported indicator type")
	// ErrUnexpectedFeedStatus is returned when a feed download returns an unexpected HTTP status
	ErrUnexpectedFeedStatus = errors.New("unexpected feed response status")
	// ErrNoUsableFeeds is returned when no feed could be downloaded or read from cache
	ErrNoUsableFeeds = errors.New("hydration produced no usable feed data")
	// ErrHydrationInProgress is returned when a second hydration is requested while one is running
	ErrHydrationInProgress = errors.New("hydration already in progress")
)
