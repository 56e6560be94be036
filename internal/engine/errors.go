package engine

import "errors"

var (
	ErrUnknownComponent = errors.New("unknown component type")
	ErrUnknownScript    = errors.New("unknown script type")
	ErrDuplicateScript  = errors.New("script type already registered")
	ErrReservedTag      = errors.New("tag value is reserved")
	ErrAlreadyAttached  = errors.New("component already attached")
	ErrObjectRemoved    = errors.New("object was removed from its scene")
)
