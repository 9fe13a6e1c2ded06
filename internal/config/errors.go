package config

import "errors"

// Configuration validation errors, returned by Configuration.Validate.
var (
	ErrInvalidRootURL       = errors.New("invalid root url: must be an absolute http(s) url")
	ErrEmptyCategoryMarker  = errors.New("category marker must not be empty")
	ErrEmptyOutputDir       = errors.New("output directory must not be empty")
	ErrEmptyUserAgent       = errors.New("user agent must not be empty")
	ErrInvalidTimeout       = errors.New("invalid timeout: must be positive")
	ErrInvalidDelay         = errors.New("invalid delay range: need 0 <= min <= max")
	ErrEmptySelector        = errors.New("pagination and post selectors must not be empty")
	ErrUnknownRenderer      = errors.New("unknown renderer: use chrome or wkhtmltopdf")
	ErrEmptyWkhtmltopdfPath = errors.New("wkhtmltopdf renderer needs a binary path")
)

// ErrConfigNotFound is returned when an explicitly named configuration file
// does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
