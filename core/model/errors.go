package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable reports that no path exists between two vertices.
	ErrUnreachable = errors.New("unreachable")
	// ErrNotFound reports an unknown vertex, edge or route position.
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfig reports a parameter outside its accepted domain.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrDisconnected reports a graph in which some vertex cannot reach the others.
	ErrDisconnected = fmt.Errorf("graph disconnected: %w", ErrUnreachable)
)
