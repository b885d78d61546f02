package container

import "fmt"

// ── Type recipes ──────────────────────────────────────────────────────────────
//
// Go has no runtime constructor reflection, so every auto-constructible type
// declares its constructor signature up front. Laravel's
//
//	class Greeter { public function __construct(Database $db, string $greeting = 'hi') {} }
//
// becomes
//
//	c.Define("Greeter", container.Recipe{
//	    Params: []container.Param{
//	        container.Dep("db", "db"),
//	        container.Optional("greeting", "hi"),
//	    },
//	    New: func(args container.Args) (any, error) {
//	        return &Greeter{DB: args[0].(*DB), Greeting: args[1].(string)}, nil
//	    },
//	})

// Param describes one constructor parameter.
type Param struct {
	// Name is the parameter name, used in diagnostics, MakeWith overrides and
	// contextual Needs("$name") bindings.
	Name string

	// Type is the identifier the parameter is typed as. Empty for primitives.
	Type string

	Default    any
	HasDefault bool
}

// Args holds resolved constructor arguments in Params order.
type Args []any

// String returns args[i] as a string, or "" if it is not one.
func (a Args) String(i int) string {
	s, _ := a[i].(string)
	return s
}

// Int returns args[i] as an int, or 0 if it is not one.
func (a Args) Int(i int) int {
	n, _ := a[i].(int)
	return n
}

// Recipe is the explicit constructor of a defined type.
type Recipe struct {
	Params []Param
	New    func(args Args) (any, error)
}

// Dep declares a parameter satisfied by resolving the identifier id.
func Dep(name, id string) Param { return Param{Name: name, Type: id} }

// OptionalDep is Dep with a fallback used when id is unknown to the container.
func OptionalDep(name, id string, def any) Param {
	return Param{Name: name, Type: id, Default: def, HasDefault: true}
}

// Value declares a required primitive parameter. It must be provided through
// MakeWith or a contextual Needs("$name") binding.
func Value(name string) Param { return Param{Name: name} }

// Optional declares a primitive parameter with a default.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Define registers (or replaces) the recipe of a constructible type.
//
//	// Laravel: class_exists(Greeter::class)
//	c.Define("Greeter", recipe)
func (c *Container) Define(typeName string, recipe Recipe) {
	if recipe.New == nil {
		panic(fmt.Sprintf("container: recipe for [%s] has no constructor", typeName))
	}
	params := make([]Param, len(recipe.Params))
	copy(params, recipe.Params)
	recipe.Params = params

	co := c.core
	co.mu.Lock()
	co.types[typeName] = recipe
	co.mu.Unlock()

	co.trace("defined", typeName, nil)
}

// Defined reports whether typeName has a recipe.
func (c *Container) Defined(typeName string) bool {
	_, ok := c.Recipe(typeName)
	return ok
}

// Recipe returns the recipe registered for typeName.
func (c *Container) Recipe(typeName string) (Recipe, bool) {
	c.core.mu.RLock()
	defer c.core.mu.RUnlock()
	r, ok := c.core.types[typeName]
	return r, ok
}

// build constructs typeName from its recipe, satisfying each parameter in
// order. Must be called with typeName already on the stack.
func (c *Container) build(typeName string, overrides map[string]any) (any, error) {
	recipe, ok := c.Recipe(typeName)
	if !ok {
		return nil, &ClassNotFoundError{Abstract: typeName}
	}

	args := make(Args, len(recipe.Params))
	for i, p := range recipe.Params {
		v, err := c.resolveParam(typeName, p, overrides)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	done := c.core.metrics.timeBuild()
	obj, err := recipe.New(args)
	done()
	if err != nil {
		return nil, wrapBuildError(err, typeName)
	}
	return obj, nil
}

// resolveParam satisfies p in this order: MakeWith override, contextual
// binding, container lookup by type, default value.
func (c *Container) resolveParam(owner string, p Param, overrides map[string]any) (any, error) {
	if v, ok := overrides[p.Name]; ok {
		return v, nil
	}

	if p.Type == "" {
		if impl, ok := c.core.contextualFor(owner, "$"+p.Name, ""); ok {
			return c.runContextual(owner, impl)
		}
	} else if c.knows(p.Type) {
		return c.resolve(p.Type, nil)
	}

	if p.HasDefault {
		return p.Default, nil
	}
	return nil, &BindingResolutionError{Abstract: owner, Param: p.Name, Type: p.Type}
}

// runContextual evaluates a contextual primitive without pushing onto the stack.
func (c *Container) runContextual(owner string, f Factory) (any, error) {
	obj, err := f(c)
	if err != nil {
		return nil, wrapBuildError(err, owner)
	}
	return obj, nil
}
