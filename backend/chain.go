package backend

import (
	"errors"

	"github.com/katalvlaran/gophylo/buffer"
)

// ErrDeclined is returned by Factory.CreateImpl when that factory cannot
// serve a create request. It is not a failure of the overall create call;
// the chain simply tries the next factory.
var ErrDeclined = errors.New("backend: factory declined")

// ErrNoBackend is returned by Chain.Create when every factory declined.
var ErrNoBackend = errors.New("backend: no factory accepted the request")

// Chain is an ordered list of factories, consulted left to right.
type Chain []Factory

// Create walks the chain in order, and within each factory walks the
// candidate resources in order, returning the first backend any factory
// successfully allocates. If resourceList is non-empty, only resources
// whose Index appears in resourceList are tried (a client pinning a
// resource by index); otherwise every resource in all is a candidate.
func (c Chain) Create(spec buffer.Spec, all []Resource, resourceList []int, requirement Flags) (Backend, Resource, error) {
	candidates := all
	if len(resourceList) > 0 {
		candidates = make([]Resource, 0, len(resourceList))
		wanted := make(map[int]bool, len(resourceList))
		for _, idx := range resourceList {
			wanted[idx] = true
		}
		for _, r := range all {
			if wanted[r.Index] {
				candidates = append(candidates, r)
			}
		}
	}

	for _, f := range c {
		if !f.Capabilities().Has(requirement) {
			continue
		}
		for _, r := range candidates {
			b, err := f.CreateImpl(spec, r)
			if errors.Is(err, ErrDeclined) {
				continue
			}
			if err != nil {
				return nil, Resource{}, err
			}
			return b, r, nil
		}
	}
	return nil, Resource{}, ErrNoBackend
}
