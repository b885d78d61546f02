package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/framework/console"
	"github.com/km-arc/go-ioc/framework/container"
)

type mailerProvider struct {
	container.BaseProvider
}

func (p *mailerProvider) Register(c *container.Container) error {
	c.Define("SMTPMailer", container.Recipe{
		Params: []container.Param{container.Dep("config", "config")},
		New: func(args container.Args) (any, error) {
			return &smtpMailer{}, nil
		},
	})
	c.Singleton("mailer", "SMTPMailer")
	return c.Alias("mailer", "mail")
}

type smtpMailer struct{}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := console.New(&mailerProvider{})
	cli.Root().SetOut(&out)
	cli.Root().SetErr(&out)
	cli.Root().SetArgs(append(args, "--env-file", "testdata/test.env"))
	err := cli.Exec()
	return out.String(), err
}

func TestBindings_ListsFrameworkAndProviderServices(t *testing.T) {
	out, err := run(t, "bindings", "--aliases")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "ABSTRACT"))

	for _, want := range []string{"config", "container", "log", "mailer", "router"} {
		assert.Contains(t, out, "\n"+want+" ", want)
	}
	assert.Contains(t, out, "SMTPMailer")
	assert.Contains(t, out, "ALIAS")
	assert.Contains(t, out, "configuration")
}

func TestResolve_PrintsType(t *testing.T) {
	out, err := run(t, "resolve", "mailer")
	require.NoError(t, err)
	assert.Equal(t, "mailer: *console_test.smtpMailer\n", out)
}

func TestResolve_FollowsAlias(t *testing.T) {
	out, err := run(t, "resolve", "mail")
	require.NoError(t, err)
	assert.Equal(t, "mail -> mailer: *console_test.smtpMailer\n", out)
}

func TestResolve_UnknownAbstract(t *testing.T) {
	_, err := run(t, "resolve", "nope")
	assert.ErrorIs(t, err, container.ErrClassNotFound)
}

func TestResolve_RequiresOneArg(t *testing.T) {
	_, err := run(t, "resolve")
	assert.Error(t, err)
}
