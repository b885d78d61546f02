package container_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"

	"github.com/km-arc/go-ioc/framework/container"
)

func chainName(i int) string { return fmt.Sprintf("T%d", i) }

// defineChain defines T0 <- T1 <- ... <- T(n-1), each depending on the previous.
func defineChain(c *container.Container, n int) {
	for i := 0; i < n; i++ {
		next := ""
		if i > 0 {
			next = chainName(i - 1)
		}
		defineLink(c, chainName(i), next)
	}
}

func TestContainerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("every name on an alias chain resolves to the one shared instance", prop.ForAll(
		func(n int) bool {
			c := container.New()
			c.Singleton("root", newDB)
			prev := "root"
			for i := 0; i < n; i++ {
				alias := fmt.Sprintf("alias%d", i)
				if err := c.Alias(prev, alias); err != nil {
					return false
				}
				prev = alias
			}
			want := c.MustMake("root")
			for i := 0; i < n; i++ {
				if c.MustMake(fmt.Sprintf("alias%d", i)) != want {
					return false
				}
			}
			return c.Canonical(prev) == "root"
		},
		gen.IntRange(0, 25),
	))

	properties.Property("closing an alias chain into a loop is always rejected", prop.ForAll(
		func(n int) bool {
			c := container.New()
			for i := 0; i < n; i++ {
				if err := c.Alias(fmt.Sprintf("a%d", i), fmt.Sprintf("a%d", i+1)); err != nil {
					return false
				}
			}
			err := c.Alias(fmt.Sprintf("a%d", n), "a0")
			return errors.Is(err, container.ErrLogic)
		},
		gen.IntRange(0, 25),
	))

	properties.Property("a linear chain resolves iff it fits within the max depth", prop.ForAll(
		func(n, limit int) bool {
			c := container.New(container.WithMaxDepth(limit))
			defineChain(c, n)
			_, err := c.Make(chainName(n - 1))
			if n <= limit {
				return err == nil
			}
			return errors.Is(err, container.ErrDepthExceeded)
		},
		gen.IntRange(1, 30),
		gen.IntRange(1, 30),
	))

	properties.Property("a ring of types reports the whole ring and leaves the container usable", prop.ForAll(
		func(n int) bool {
			c := container.New()
			for i := 0; i < n; i++ {
				defineLink(c, chainName(i), chainName((i+1)%n))
			}
			defineLink(c, "Leaf", "")

			_, err := c.Make(chainName(0))
			var cycle *container.CircularDependencyError
			if !errors.As(err, &cycle) {
				return false
			}
			if len(cycle.Path) != n+1 || cycle.Path[0] != cycle.Path[n] {
				return false
			}
			_, err = c.Make("Leaf")
			return err == nil
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
