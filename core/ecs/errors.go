package ecs

import "github.com/rotisserie/eris"

// Sentinel errors. Errors returned by this package wrap one of these and name
// the entity and component type involved; match them with errors.Is.
var (
	ErrInvalidEntity      = eris.New("invalid entity")
	ErrDuplicateComponent = eris.New("component already exists on entity")
	ErrComponentNotFound  = eris.New("component does not exist on entity")
	ErrIndexOutOfRange    = eris.New("row index out of range")
)

func invalidEntity(e Entity, t ComponentType) error {
	return eris.Wrapf(ErrInvalidEntity, "entity %s (component %s)", e, t)
}

func duplicateComponent(e Entity, t ComponentType) error {
	return eris.Wrapf(ErrDuplicateComponent, "entity %s already holds %s", e, t)
}

func componentNotFound(e Entity, t ComponentType) error {
	return eris.Wrapf(ErrComponentNotFound, "entity %s holds no %s", e, t)
}

func indexOutOfRange(i, count int, t ComponentType) error {
	return eris.Wrapf(ErrIndexOutOfRange, "index %d, %d live %s rows", i, count, t)
}
