package scene

import "errors"

// Hierarchy errors
var (
	ErrNilChild   = errors.New("child is nil")
	ErrCycle      = errors.New("adding child would create a cycle")
	ErrNotChild   = errors.New("object is not a child of this parent")
	ErrNameLocked = errors.New("name is locked while object has a parent")
)

// Registry and construction errors
var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrUnknownClass     = errors.New("unknown class")
	ErrUnknownPrefab    = errors.New("unknown prefab")
	ErrMalformed        = errors.New("malformed document")
	ErrDuplicateKey     = errors.New("key already registered")
	ErrInvalidKey       = errors.New("invalid registry key")
)

// ErrSceneRoot is returned when a scene's root object is added under another object.
var ErrSceneRoot = errors.New("scene root cannot become a child")
