package container

import (
	"fmt"
	"strings"
)

// ContextualBuilder implements the fluent contextual binding API.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(...)
//	c.When("PhotoController").Needs("Filesystem").Give(func(c *container.Container) (any, error) {
//	    return filesystem.NewS3(...), nil
//	})
type ContextualBuilder struct {
	container *Container
	concretes []string
	needs     string
}

// Needs specifies which abstract the concrete type depends on. Prefix a
// parameter name with "$" to target a primitive recipe parameter.
//
//	// Laravel: ->needs('$storagePath')
func (b *ContextualBuilder) Needs(abstract string) *ContextualBuilder {
	b.needs = abstract
	return b
}

// Give provides what the concrete receives for the needed abstract: a
// Factory, a func(*Container) any, or a type name / abstract to resolve.
// For "$param" needs any other value is handed over as-is.
func (b *ContextualBuilder) Give(implementation any) {
	var f Factory
	switch v := implementation.(type) {
	case Factory:
		f = v
	case func(*Container) (any, error):
		f = v
	case func(*Container) any:
		f = func(c *Container) (any, error) { return v(c), nil }
	case string:
		if strings.HasPrefix(b.needs, "$") {
			b.GiveValue(v)
			return
		}
		f = func(c *Container) (any, error) { return c.Make(v) }
	default:
		if !strings.HasPrefix(b.needs, "$") {
			panic(fmt.Sprintf("container: contextual give for [%s] must be a factory or an abstract, got %T", b.needs, implementation))
		}
		b.GiveValue(v)
		return
	}
	b.give(f)
}

// GiveValue is a shorthand for Give when the value is a simple scalar or
// pre-built instance (no factory logic needed).
//
//	// Laravel: ->give('/tmp/photos')
//	c.When("PhotoController").Needs("$storagePath").GiveValue("/tmp/photos")
func (b *ContextualBuilder) GiveValue(value any) {
	b.give(func(_ *Container) (any, error) { return value, nil })
}

// GiveTagged resolves every abstract under tag and gives the []any.
//
//	// Laravel: ->giveTagged('reports')
func (b *ContextualBuilder) GiveTagged(tag string) {
	b.give(func(c *Container) (any, error) { return c.Tagged(tag) })
}

func (b *ContextualBuilder) give(f Factory) {
	if b.needs == "" {
		panic("container: contextual binding is missing Needs()")
	}
	for _, concrete := range b.concretes {
		b.container.core.addContextual(concrete, b.needs, f)
	}
}
