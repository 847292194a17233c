// Package remap defines options and sentinel errors for the AMR remap engine.
package remap

import (
	"errors"

	"github.com/katalvlaran/amremap/compacthash"
)

// Sentinel errors for remap operations.
var (
	// ErrNilMesh indicates a nil input or output cell list.
	ErrNilMesh = errors.New("remap: cell list must not be nil")

	// ErrDomainMismatch indicates the meshes disagree on the base grid size.
	ErrDomainMismatch = errors.New("remap: input and output must share the same base grid")

	// ErrTooDeep indicates refinement beyond the descent stack bound.
	ErrTooDeep = errors.New("remap: refinement level exceeds descent stack bound")

	// ErrMeshIntegrity indicates a declared sub-tree is missing a leaf.
	ErrMeshIntegrity = errors.New("remap: input mesh does not tile a refined region")

	// ErrBadWorkers indicates a non-positive worker count.
	ErrBadWorkers = errors.New("remap: workers must be at least 1")
)

// maxDepth bounds the explicit descent stack. Levels must stay below
// maxDepth-1 so the stack can index one level past the deepest cell.
const maxDepth = 32

// Options configures a remap run.
//
//	Hash    - substrate settings handed to the compacthash factory; the
//	          zero-value Kind (Auto) lets each level pick its own backend.
//	Workers - fork-join width for the build and sweep phases. 1 runs both
//	          serially; higher values partition cells into contiguous
//	          blocks, one goroutine each.
type Options struct {
	Hash    compacthash.Options
	Workers int
}

// DefaultOptions returns Options with automatic backend selection and a
// serial sweep. Remap starts from these and sets Hash.Kind to Perfect.
func DefaultOptions() Options {
	return Options{
		Hash:    compacthash.DefaultOptions(),
		Workers: 1,
	}
}

// Validate checks the Options. It returns ErrBadWorkers for a non-positive
// worker count and forwards compacthash option validation.
func (o *Options) Validate() error {
	if o.Workers < 1 {
		return ErrBadWorkers
	}
	return o.Hash.Validate()
}
