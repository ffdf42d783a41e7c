// Package netlib supplies worked sub-networks built from the operator set: a
// patch embedding for image-like inputs and a transformer block with
// grouped-query attention, RoPE, and a SwiGLU feed-forward. Neither applies
// tensor-parallel sharding; PatchEmbd's TensorParallel accepts only a mono
// distribution.
package netlib
