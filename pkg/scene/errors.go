package scene

import "github.com/pkg/errors"

var (
	ErrUnknownShapeType   = errors.New("scene: unknown shape type")
	ErrUnknownAccelerator = errors.New("scene: unknown accelerator")
	ErrMissingField       = errors.New("scene: missing field")
	ErrEmptyScene         = errors.New("scene: no shapes")
)
