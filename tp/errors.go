package tp

import "errors"

// ErrInvalidDistribution is returned by New when start/len/total violate the
// Distribution invariants (0 < len, start+len <= total).
var ErrInvalidDistribution = errors.New("tp: invalid distribution")

// ErrUnsupportedRank is returned when SplitShape or Materialize is asked to
// act on a rank the WeightKind has no rule for. An unexpected rank reaching
// a weight kind is a model-description bug, reported as an error rather than
// a panic.
var ErrUnsupportedRank = errors.New("tp: unsupported rank for this weight kind")

// ErrIndivisible is returned when the sharded axis does not divide evenly by
// total (or, for AttnQKV, by gqa+2).
var ErrIndivisible = errors.New("tp: axis does not divide evenly for this distribution")

// ErrBufferSize is returned by Materialize when the caller's dst/src buffers
// are not the byte lengths the shard's shape implies.
var ErrBufferSize = errors.New("tp: buffer size does not match expected byte length")
