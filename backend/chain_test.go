package backend_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gophylo/backend"
	"github.com/katalvlaran/gophylo/buffer"
)

type stubFactory struct {
	name string
	caps backend.Flags
}

func (s stubFactory) Name() string                { return s.name }
func (s stubFactory) Capabilities() backend.Flags { return s.caps }
func (s stubFactory) CreateImpl(spec buffer.Spec, resource backend.Resource) (backend.Backend, error) {
	return nil, backend.ErrDeclined
}

func TestChain_NoFactoryAccepts(t *testing.T) {
	chain := backend.Chain{stubFactory{name: "a", caps: backend.FlagCPU}}
	_, _, err := chain.Create(buffer.Spec{}, []backend.Resource{{Index: 0}}, nil, 0)
	require.ErrorIs(t, err, backend.ErrNoBackend)
}

func TestFlags_Has(t *testing.T) {
	f := backend.FlagCPU | backend.FlagDoublePrecision
	require.True(t, f.Has(backend.FlagCPU))
	require.False(t, f.Has(backend.FlagVectorSIMD))
}

func TestChain_CapabilityPrefilter(t *testing.T) {
	chain := backend.Chain{stubFactory{name: "a", caps: backend.FlagCPU}}
	_, _, err := chain.Create(buffer.Spec{}, []backend.Resource{{Index: 0}}, nil, backend.FlagVectorSIMD)
	require.ErrorIs(t, err, backend.ErrNoBackend)
}
