// Package model bridges the ZMF wire format and the symgraph builder:
// LoadZMF does the I/O, BuildFromZMF does the pure graph construction. The
// weight-file reader proper (the memory-mapped binary archive a production
// system would stream parameter bytes from) stays outside this module;
// LoadZMF is the much smaller case of deserializing the ZMF protobuf
// container that describes the graph shape and carries small parameter
// tensors inline.
package model

import (
	"fmt"
	"os"

	"github.com/zerfoo/zmf"
	"google.golang.org/protobuf/proto"
)

// LoadZMF reads and deserializes a .zmf file into its protobuf Model.
func LoadZMF(path string) (*zmf.Model, error) {
	//nolint:gosec // model path is validated by the caller.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: reading ZMF file %q: %w", path, err)
	}

	m := &zmf.Model{}
	if err := proto.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("model: unmarshaling ZMF data from %q: %w", path, err)
	}

	return m, nil
}
