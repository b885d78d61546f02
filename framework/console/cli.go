// Package console is the command-line front end of an Application.
//
//	// Laravel: php artisan serve / php artisan container:list
//	ioc serve
//	ioc bindings
//	ioc resolve config
package console

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-ioc/framework/app"
	"github.com/km-arc/go-ioc/framework/container"
)

// CLI builds an Application per invocation and runs one command against it.
type CLI struct {
	rootCmd   *cobra.Command
	envFiles  []string
	providers []container.ServiceProvider
}

// New returns a CLI whose Application also registers providers.
func New(providers ...container.ServiceProvider) *CLI {
	c := &CLI{providers: providers}
	c.rootCmd = &cobra.Command{
		Use:           "ioc",
		Short:         "ioc runs and inspects a go-ioc application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.rootCmd.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, ".env files to load (default .env)")

	c.addCmd(&serveCmd{})
	c.addCmd(&bindingsCmd{})
	c.addCmd(&resolveCmd{})
	return c
}

// Root exposes the cobra command, e.g. to set output and args in tests.
func (c *CLI) Root() *cobra.Command { return c.rootCmd }

// Exec runs the command named on the command line.
func (c *CLI) Exec() error {
	return c.rootCmd.Execute()
}

// application creates and boots the Application the command runs against.
func (c *CLI) application() (*app.Application, error) {
	a, err := app.New(c.envFiles...)
	if err != nil {
		return nil, err
	}
	for _, p := range c.providers {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a, nil
}

func (c *CLI) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *CLI, cmd *cobra.Command, args []string) error
}
