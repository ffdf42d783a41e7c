package graph

import "errors"

// ErrDuplicateName is returned when a fully qualified name is already present
// in the graph; every node and external binding claims its name exactly once.
var ErrDuplicateName = errors.New("graph: duplicate fq_name")

// ErrDanglingInput is returned when a node references an output handle that
// was not produced by an earlier node or by externals_in.
var ErrDanglingInput = errors.New("graph: input handle references an unknown producer")
