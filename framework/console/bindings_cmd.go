package console

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type bindingsCmd struct {
	aliases bool
}

func (c *bindingsCmd) registerFlags() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "List every binding and instance registered in the container",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&c.aliases, "aliases", false, "also list the alias table")
	return cmd
}

func (c *bindingsCmd) run(cl *CLI, cmd *cobra.Command, args []string) error {
	a, err := cl.application()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ABSTRACT\tCONCRETE\tSHARED\tRESOLVED")
	for _, abstract := range a.Bindings() {
		concrete := "-"
		if b, ok := a.Binding(abstract); ok {
			concrete = b.Concrete
			if b.Factory != nil {
				concrete = "<factory>"
			}
		} else if inst, ok := a.CachedInstance(abstract); ok {
			concrete = fmt.Sprintf("<instance %T>", inst)
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", abstract, concrete, a.IsShared(abstract), a.Resolved(abstract))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !c.aliases {
		return nil
	}
	aliases := a.Aliases()
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	fmt.Fprintln(cmd.OutOrStdout())
	w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tTARGET")
	for _, alias := range names {
		target := aliases[alias]
		if key := a.Canonical(alias); key != target {
			target = fmt.Sprintf("%s -> %s", target, key)
		}
		fmt.Fprintf(w, "%s\t%s\n", alias, target)
	}
	return w.Flush()
}
