package netlib

import "errors"

// ErrNonMonoUnsupported is returned by PatchEmbd.TensorParallel for any
// sharded distribution: no sharding rule is defined for patch embeddings, so
// a sharded request is rejected explicitly rather than silently ignored.
var ErrNonMonoUnsupported = errors.New("netlib: PatchEmbd has no tensor-parallel rewrite for a sharded distribution")
