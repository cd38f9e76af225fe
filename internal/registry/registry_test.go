package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/specialistvlad/confjson/internal/conferr"
	"github.com/specialistvlad/confjson/internal/ctxlog"
	"github.com/specialistvlad/confjson/internal/visitation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestRegisterAndResolve(t *testing.T) {
	reg := New()
	server := NewType("maia.Server",
		&Property{Name: "port", Metadata: &visitation.Metadata{Type: cty.Number}},
		&Property{Name: "tls", Configuration: "maia.TLS"},
	)
	require.NoError(t, reg.Register(server))

	got, err := reg.Resolve("maia.Server")
	require.NoError(t, err)
	assert.Same(t, server, got)

	_, err = reg.Resolve("maia.Missing")
	require.ErrorIs(t, err, conferr.ErrTypeResolution)
	assert.Contains(t, err.Error(), "maia.Missing")

	p, err := got.Property("tls")
	require.NoError(t, err)
	assert.True(t, p.IsSubConfiguration())

	_, err = got.Property("nope")
	require.ErrorIs(t, err, conferr.ErrPropertyNotFound)
	assert.Contains(t, err.Error(), "nope")
}

func TestRegister_Errors(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(NewType("a")))

	assert.Error(t, reg.Register(NewType("a")), "duplicate type")
	assert.Error(t, reg.Register(NewType("")), "empty name")
	assert.Error(t, reg.Register(nil))
	assert.Error(t, reg.Register(NewType("b", &Property{Name: "x"}, &Property{Name: "x"})), "duplicate property")

	assert.Panics(t, func() { reg.MustRegister(NewType("a")) })
}

func TestNames(t *testing.T) {
	reg := New()
	reg.MustRegister(NewType("c"), NewType("a"), NewType("b"))
	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
}

func TestValidate(t *testing.T) {
	t.Run("valid registry", func(t *testing.T) {
		def := cty.NumberIntVal(8080)
		reg := New()
		reg.MustRegister(
			NewType("Server",
				&Property{Name: "port", Metadata: &visitation.Metadata{Type: cty.Number, Default: &def}},
				&Property{Name: "tls", Configuration: "TLS"},
			),
			NewType("TLS", &Property{Name: "cert", Metadata: &visitation.Metadata{Type: cty.String}}),
		)
		assert.NoError(t, reg.Validate(testContext()))
	})

	t.Run("all problems are reported", func(t *testing.T) {
		badDefault := cty.StringVal("not a number")
		anyDefault := cty.True
		reg := New()
		reg.MustRegister(NewType("Server",
			&Property{Name: "port", Metadata: &visitation.Metadata{Type: cty.Number, Default: &badDefault}},
			&Property{Name: "tls", Configuration: "TLS"},
			&Property{Name: "loose", Metadata: &visitation.Metadata{Type: cty.DynamicPseudoType, Default: &anyDefault}},
		))

		err := reg.Validate(testContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "property 'port'")
		assert.Contains(t, err.Error(), "property 'tls'")
		assert.NotContains(t, err.Error(), "property 'loose'")
		assert.ErrorIs(t, err, conferr.ErrTypeResolution)
	})
}

func TestResolve_Concurrent(t *testing.T) {
	reg := New()
	reg.MustRegister(NewType("a"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Resolve("a")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
