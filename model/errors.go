package model

import "errors"

// ErrNilModel is returned when BuildFromZMF is handed a model with no graph.
var ErrNilModel = errors.New("model: nil ZMF model or graph")

// ErrUnknownInput is returned when a node references an input name that was
// never produced by an earlier node, parameter, or declared graph input.
var ErrUnknownInput = errors.New("model: reference to undeclared tensor")

// ErrUnknownOutput is returned when a declared graph output name was never
// produced while replaying the node list.
var ErrUnknownOutput = errors.New("model: declared output was never produced")
