package plugintest_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ophelia/plugin"
	"ophelia/plugin/plugintest"
)

// gitPlugin exercises the whole surface: prompt, input and commands.
type gitPlugin struct {
	*plugin.Base
	ran      []string
	cleanups int
}

var _ plugin.Plugin = (*gitPlugin)(nil)

func newGitPlugin(in plugin.InputProvider, out plugin.OutputEmitter) (plugin.Plugin, error) {
	p := &gitPlugin{}
	base, err := plugin.NewBase(
		plugin.Metadata{
			Name:      "git",
			Prompt:    "Which remote?",
			NeedsArgs: true,
		},
		plugin.WithIO(in, out),
		plugin.WithCommand("push", p.run("push")),
		plugin.WithCommand("pull", p.run("pull")),
	)
	if err != nil {
		return nil, err
	}
	p.Base = base
	return p, nil
}

func (p *gitPlugin) run(command string) plugin.CommandFunc {
	return func(_ context.Context, input string) error {
		p.ran = append(p.ran, command+" "+input)
		return nil
	}
}

func (p *gitPlugin) Execute(ctx context.Context) error {
	args := p.PrepExecute(ctx, nil, nil)
	if args == nil {
		return nil
	}
	return p.RunCommand(ctx, args.Command, args.Input)
}

func (p *gitPlugin) DirectExecute(ctx context.Context, args plugin.Args) error {
	return p.RunCommand(ctx, args.Command, args.Input)
}

func (p *gitPlugin) CleanUp(context.Context) error {
	p.cleanups++
	return nil
}

// echoPlugin needs one input and declares no commands.
type echoPlugin struct {
	*plugin.Base
	last string
}

var _ plugin.Plugin = (*echoPlugin)(nil)

func newEchoPlugin(in plugin.InputProvider, out plugin.OutputEmitter) (plugin.Plugin, error) {
	p := &echoPlugin{}
	base, err := plugin.NewBase(
		plugin.Metadata{Name: "echo", Prompt: "Say something.", NeedsArgs: true},
		plugin.WithIO(in, out),
	)
	if err != nil {
		return nil, err
	}
	p.Base = base
	return p, nil
}

func (p *echoPlugin) Execute(ctx context.Context) error {
	if args := p.PrepExecute(ctx, nil, nil); args != nil {
		p.last = args.Input
	}
	return nil
}

func (p *echoPlugin) DirectExecute(_ context.Context, args plugin.Args) error {
	p.last = args.Input
	return nil
}

func (p *echoPlugin) CleanUp(context.Context) error {
	p.last = ""
	return nil
}

// statusPlugin needs nothing at all.
type statusPlugin struct {
	*plugin.Base
}

var _ plugin.Plugin = (*statusPlugin)(nil)

func newStatusPlugin(in plugin.InputProvider, out plugin.OutputEmitter) (plugin.Plugin, error) {
	base, err := plugin.NewBase(
		plugin.Metadata{Name: "status", Description: "Reports host health."},
		plugin.WithIO(in, out),
	)
	if err != nil {
		return nil, err
	}
	return &statusPlugin{Base: base}, nil
}

func (p *statusPlugin) Execute(ctx context.Context) error {
	p.PrepExecute(ctx, nil, nil)
	return nil
}

func (p *statusPlugin) DirectExecute(context.Context, plugin.Args) error { return nil }

func (p *statusPlugin) CleanUp(context.Context) error { return nil }

func TestConformGitPlugin(t *testing.T) {
	t.Parallel()
	plugintest.Conform(t, newGitPlugin)
}

func TestConformEchoPlugin(t *testing.T) {
	t.Parallel()
	plugintest.Conform(t, newEchoPlugin)
}

func TestConformStatusPlugin(t *testing.T) {
	t.Parallel()
	plugintest.Conform(t, newStatusPlugin)
}

func TestPreparationScenario(t *testing.T) {
	t.Parallel()
	in := plugintest.NewScriptReader("origin", "push")
	p, err := newGitPlugin(in, plugintest.NewRecorder())
	require.NoError(t, err)

	args := p.PrepExecute(context.Background(), nil, nil)
	require.Equal(t, &plugin.Args{Input: "origin", Command: "push"}, args)
}

func TestGitPluginExecuteCollectsThenRuns(t *testing.T) {
	t.Parallel()
	in := plugintest.NewScriptReader("origin", "push")
	p, err := newGitPlugin(in, plugintest.NewRecorder())
	require.NoError(t, err)

	g := p.(*gitPlugin)
	require.NoError(t, g.Execute(context.Background()))
	assert.Equal(t, []string{"push origin"}, g.ran)

	require.NoError(t, g.CleanUp(context.Background()))
	require.NoError(t, g.CleanUp(context.Background()))
	assert.Equal(t, 2, g.cleanups)
}

func TestScriptReader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	in := plugintest.NewScriptReader("one", "two")

	line, err := in.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = in.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two", line)

	_, err = in.ReadLine(ctx)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, in.Reads())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	fresh := plugintest.NewScriptReader("x")
	_, err = fresh.ReadLine(cancelled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fresh.Reads(), "a cancelled read does not consume the script")
}

func TestCancelAndFailReaders(t *testing.T) {
	t.Parallel()
	_, err := plugintest.CancelReader().ReadLine(context.Background())
	require.ErrorIs(t, err, plugin.ErrInputCancelled)

	boom := errors.New("boom")
	_, err = plugintest.FailReader(boom).ReadLine(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestRecorder(t *testing.T) {
	t.Parallel()
	rec := plugintest.NewRecorder()
	rec.Emit("first")
	rec.Emit("second")
	assert.Equal(t, []string{"first", "second"}, rec.Messages())

	rec.Messages()[0] = "mutated"
	assert.Equal(t, "first", rec.Messages()[0], "Messages returns a copy")
}
