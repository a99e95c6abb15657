package swarm

import "errors"

// ErrGraphNotFound indicates a graph id absent from the registry.
var ErrGraphNotFound = errors.New("graph not found")
