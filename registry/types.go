package registry

import (
	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
)

// Handle is an opaque instance identifier returned by Create.
type Handle int

// CreateParams describes the buffer shape and backend preferences for one
// new instance.
type CreateParams struct {
	Spec        buffer.Spec
	Preference  backend.Flags
	Requirement backend.Flags
}

// instance is the registry's internal record for one live Handle.
type instance struct {
	b        backend.Backend
	resource backend.Resource
}
