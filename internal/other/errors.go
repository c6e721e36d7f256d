package other

import "errors"

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrAmbiguousProject     = errors.New("multiple projects found")
	ErrUnsupportedPlatform  = errors.New("unsupported platform")
	ErrInvalidLegacyCommand = errors.New("invalid legacy command")
	ErrToolNotFound         = errors.New("tool not found")
)
