package graph

import "errors"

// ErrCycleDetected indicates the dependency edges form a cycle and no valid
// execution order exists.
var ErrCycleDetected = errors.New("circular dependency detected")

// ErrAgentNotFound indicates a node ID does not resolve to any agent in the graph.
var ErrAgentNotFound = errors.New("agent not found")

// ErrUnknownDependency indicates a dependency edge references a node ID that
// was never added to the graph. Dangling references are accepted when an agent
// is added and surface only when a plan is requested.
var ErrUnknownDependency = errors.New("unknown dependency")

// ErrSelfDependency indicates a node was declared as its own dependency.
var ErrSelfDependency = errors.New("agent cannot depend on itself")

// ErrDuplicateAgent indicates an agent ID is already present in the graph.
var ErrDuplicateAgent = errors.New("agent already exists")

// ErrInvalidEdgeType indicates an edge type outside the known set.
var ErrInvalidEdgeType = errors.New("invalid edge type")

// ErrInvalidStatus indicates a status value outside the known set.
var ErrInvalidStatus = errors.New("invalid status")
