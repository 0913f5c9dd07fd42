package facelist

import "errors"

var (
	ErrInvalidCatalog        = errors.New("invalid zone shape catalog")
	ErrShortNodeList         = errors.New("node list shorter than the zone shape catalog requires")
	ErrInvalidOrigin         = errors.New("node origin must be 0 or 1")
	ErrInvalidGhostRange     = errors.New("invalid ghost zone offsets")
	ErrMissingMaterials      = errors.New("material list does not cover every zone")
	ErrUnsupportedShape      = errors.New("unsupported zone shape")
	ErrInvalidBoundaryMethod = errors.New("invalid boundary method")
)
