package console

import (
	"fmt"

	"github.com/spf13/cobra"
)

type resolveCmd struct{}

func (c *resolveCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <abstract>",
		Short: "Resolve an abstract and print the type it produced",
		Args:  cobra.ExactArgs(1),
	}
}

func (c *resolveCmd) run(cl *CLI, cmd *cobra.Command, args []string) error {
	a, err := cl.application()
	if err != nil {
		return err
	}

	abstract := args[0]
	inst, err := a.Make(abstract)
	if err != nil {
		return err
	}

	key := a.Canonical(abstract)
	if key != abstract {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %T\n", abstract, key, inst)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %T\n", abstract, inst)
	return nil
}
