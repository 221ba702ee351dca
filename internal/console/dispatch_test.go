package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestExecute_EmptyLineIsNoOp(t *testing.T) {
	c, rep, _ := newTestConsole(t, RunModeOffline, nil)
	before := len(rep.events)

	for _, line := range []string{"", "   ", "\t"} {
		out := c.Execute(line)
		assert.Equal(t, StatusNoOp, out.Status)
		assert.NoError(t, out.Err)
		assert.False(t, out.Failed())
	}
	assert.Len(t, rep.events, before, "no-op is silent")
	w, _ := c.History().Position()
	assert.Equal(t, 0, w)
}

func TestExecute_UnknownCommand(t *testing.T) {
	c, rep, _ := newTestConsole(t, RunModeOffline, nil)

	out := c.Execute("teleport home")
	assert.Equal(t, StatusUnknownCommand, out.Status)
	assert.Equal(t, "teleport", out.Command)
	assert.ErrorIs(t, out.Err, ErrUnknownCommand)
	assert.Equal(t, 1, rep.count("unknown"))
}

func TestExecute_ArityBounds(t *testing.T) {
	var got []string
	c, rep, _ := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{
			Name: "one", MinArgs: 1, MaxArgs: 1,
			Handler: func(args []string) error { got = args; return nil },
		}))
	})

	out := c.Execute("one")
	assert.Equal(t, StatusTooFewArguments, out.Status)
	assert.ErrorIs(t, out.Err, ErrTooFewArguments)

	out = c.Execute("one a b")
	assert.Equal(t, StatusTooManyArguments, out.Status)
	assert.ErrorIs(t, out.Err, ErrTooManyArguments)

	assert.Nil(t, got, "handler must not run on arity violation")
	assert.Equal(t, 2, rep.count("arity"))

	out = c.Execute(`ONE "a b"`)
	assert.True(t, out.OK())
	assert.Equal(t, "one", out.Command)
	assert.Equal(t, []string{"a b"}, got)
}

func TestExecute_ZeroBoundsAreUnbounded(t *testing.T) {
	calls := 0
	c, _, _ := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{
			Name:    "any",
			Handler: func([]string) error { calls++; return nil },
		}))
		require.NoError(t, b.Command(Command{
			Name: "atleast2", MinArgs: 2,
			Handler: func([]string) error { calls++; return nil },
		}))
	})

	assert.True(t, c.Execute("any").OK())
	assert.True(t, c.Execute("any 1 2 3 4 5 6 7").OK())
	assert.Equal(t, StatusTooFewArguments, c.Execute("atleast2 x").Status)
	assert.True(t, c.Execute("atleast2 x y z w").OK())
	assert.Equal(t, 3, calls)
}

func TestExecute_PermissionMatrix(t *testing.T) {
	tests := []struct {
		perm Permission
		mode RunMode
		want Status
	}{
		{PermissionBoth, RunModeOffline, StatusOK},
		{PermissionBoth, RunModeClient, StatusOK},
		{PermissionBoth, RunModeServer, StatusOK},
		{PermissionServerOnly, RunModeOffline, StatusPermissionDenied},
		{PermissionServerOnly, RunModeClient, StatusPermissionDenied},
		{PermissionServerOnly, RunModeServer, StatusOK},
		{PermissionClientOnly, RunModeOffline, StatusOK},
		{PermissionClientOnly, RunModeClient, StatusOK},
		{PermissionClientOnly, RunModeServer, StatusPermissionDenied},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (go.mod targets Go 1.21 loop semantics)
		c, _, _ := newTestConsole(t, tt.mode, func(b *Builder) {
			require.NoError(t, b.Command(Command{Name: "cmd", Permission: tt.perm, Handler: noop}))
		})
		out := c.Execute("cmd")
		assert.Equal(t, tt.want, out.Status, "%s in %s", tt.perm, tt.mode)
		if tt.want == StatusPermissionDenied {
			assert.ErrorIs(t, out.Err, ErrPermissionDenied)
		}
	}
}

func TestExecute_PermissionCheckedBeforeArity(t *testing.T) {
	c, rep, _ := newTestConsole(t, RunModeClient, func(b *Builder) {
		require.NoError(t, b.Command(Command{
			Name: "sv_address", Permission: PermissionServerOnly, MinArgs: 1, MaxArgs: 1, Handler: noop,
		}))
	})

	out := c.Execute("sv_address")
	assert.Equal(t, StatusPermissionDenied, out.Status)
	assert.Equal(t, 0, rep.count("arity"))
}

func TestExecute_HandlerErrorIsContained(t *testing.T) {
	boom := errors.New("boom")
	c, rep, _ := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{Name: "fail", Handler: func([]string) error { return boom }}))
	})

	out := c.Execute("fail")
	assert.Equal(t, StatusHandlerFailed, out.Status)
	assert.ErrorIs(t, out.Err, ErrHandlerFailed)
	assert.ErrorIs(t, out.Err, boom)
	assert.Equal(t, 1, rep.count("failed"))

	w, _ := c.History().Position()
	assert.Equal(t, 0, w, "failed dispatch is not recorded")
}

func TestExecute_HandlerPanicIsContained(t *testing.T) {
	c, _, _ := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{Name: "panic", Handler: func([]string) error { panic("bad state") }}))
	})

	var out Outcome
	assert.NotPanics(t, func() { out = c.Execute("panic") })
	assert.Equal(t, StatusHandlerFailed, out.Status)
	assert.Contains(t, out.Err.Error(), "bad state")
}

func TestExecute_SuccessRecordsRawLine(t *testing.T) {
	c, _, _ := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{Name: "say", Handler: noop}))
	})

	require.True(t, c.Execute(`say   "hello there"`).OK())
	_, _ = c.HistoryUp("draft")
	require.True(t, c.Execute("say again").OK())

	w, r := c.History().Position()
	assert.Equal(t, 2, w)
	assert.Equal(t, w, r, "cursor returns to live line")

	line, ok := c.HistoryUp("")
	require.True(t, ok)
	assert.Equal(t, "say again", line)
	line, ok = c.HistoryUp("")
	require.True(t, ok)
	assert.Equal(t, `say   "hello there"`, line)
}

func TestInvoke_SkipsHistory(t *testing.T) {
	var got []string
	c, _, _ := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{
			Name: "set", MinArgs: 1, MaxArgs: 1,
			Handler: func(args []string) error { got = args; return nil },
		}))
	})

	out := c.Invoke("SET", []string{"has spaces"})
	require.True(t, out.OK())
	assert.Equal(t, []string{"has spaces"}, got)
	assert.Equal(t, StatusTooManyArguments, c.Invoke("set", []string{"a", "b"}).Status)

	w, _ := c.History().Position()
	assert.Equal(t, 0, w)
}

func TestClose(t *testing.T) {
	c, _, _ := newTestConsole(t, RunModeOffline, nil)
	require.True(t, c.Execute("help").OK())
	c.Close()

	out := c.Execute("help")
	assert.Equal(t, StatusNoOp, out.Status)
	assert.ErrorIs(t, out.Err, ErrClosed)
	assert.ErrorIs(t, c.ExecuteFile("autoexec"), ErrClosed)
	w, _ := c.History().Position()
	assert.Equal(t, 0, w)
}

func TestRegistrySealedAfterNew(t *testing.T) {
	c, _, _ := newTestConsole(t, RunModeOffline, nil)
	err := c.Registry().Register(Command{Name: "late", Handler: noop})
	assert.ErrorIs(t, err, ErrRegistrySealed)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "permission_denied", StatusPermissionDenied.String())
	assert.Equal(t, "status(42)", Status(42).String())
}

// Property: a handler only ever sees an argument count inside its bounds.
func TestPropertyHandlerSeesArgsWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minArgs := rapid.IntRange(0, 4).Draw(t, "min")
		maxArgs := rapid.IntRange(0, 6).Draw(t, "max")
		if maxArgs != 0 && maxArgs < minArgs {
			maxArgs = minArgs
		}
		n := rapid.IntRange(0, 8).Draw(t, "n")

		r := NewRegistry()
		seen := -1
		if err := r.Register(Command{
			Name: "cmd", MinArgs: minArgs, MaxArgs: maxArgs,
			Handler: func(args []string) error { seen = len(args); return nil },
		}); err != nil {
			t.Fatalf("register: %v", err)
		}
		c := &Console{
			registry: r,
			history:  NewHistory(DefaultHistorySize),
			reporter: NopReporter{},
			mode:     func() RunMode { return RunModeOffline },
		}

		args := make([]string, n)
		for i := range args {
			args[i] = "x"
		}
		out := c.Invoke("cmd", args)

		inBounds := (minArgs == 0 || n >= minArgs) && (maxArgs == 0 || n <= maxArgs)
		if inBounds != out.OK() {
			t.Fatalf("min=%d max=%d n=%d: status %s", minArgs, maxArgs, n, out.Status)
		}
		if !inBounds && seen != -1 {
			t.Fatalf("handler ran with %d args outside [%d, %d]", seen, minArgs, maxArgs)
		}
	})
}
