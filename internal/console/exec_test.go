package console

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCfg(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("Cfg", name+ConfigExt), []byte(content), 0o644))
}

func TestExecuteFile_RunsLinesInOrder(t *testing.T) {
	var ran []string
	c, rep, fs := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{
			Name: "echo",
			Handler: func(args []string) error {
				ran = append(ran, args...)
				return nil
			},
		}))
	})
	writeCfg(t, fs, "autoexec", "echo one\n// echo skipped\n\necho two\r\n  // echo indented\n")

	require.NoError(t, c.ExecuteFile("autoexec"))
	assert.Equal(t, []string{"one", "two"}, ran)

	// Only lines starting with // are comments; an indented one dispatches "//".
	assert.Equal(t, 1, rep.count("unknown"))
	unknown, _ := rep.last("unknown")
	assert.Equal(t, "//", unknown.name)

	end, ok := rep.last("batch_end")
	require.True(t, ok)
	assert.Equal(t, [2]int{5, 1}, end.val)

	start, ok := rep.last("batch_start")
	require.True(t, ok)
	assert.NotEmpty(t, start.val, "batch carries an id")
}

func TestExecuteFile_FailingLineDoesNotStopBatch(t *testing.T) {
	var ran []string
	c, rep, fs := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{
			Name: "echo",
			Handler: func(args []string) error {
				ran = append(ran, args...)
				return nil
			},
		}))
	})
	writeCfg(t, fs, "server", "echo before\nnosuchcommand\necho after\n")

	require.NoError(t, c.ExecuteFile("server"))
	assert.Equal(t, []string{"before", "after"}, ran)
	assert.Equal(t, 1, rep.count("unknown"))

	end, _ := rep.last("batch_end")
	assert.Equal(t, [2]int{3, 1}, end.val)
}

func TestExecuteFile_NotFound(t *testing.T) {
	c, rep, _ := newTestConsole(t, RunModeOffline, nil)

	err := c.ExecuteFile("missing")
	assert.ErrorIs(t, err, ErrFileNotFound)
	ev, ok := rep.last("notfound")
	require.True(t, ok)
	assert.Equal(t, "missing", ev.name)
	assert.Equal(t, filepath.Join("Cfg", "missing.cfg"), ev.val)
	assert.Equal(t, 0, rep.count("batch_start"))
}

func TestExecCommand(t *testing.T) {
	count := 0
	c, _, fs := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{Name: "tick", Handler: func([]string) error { count++; return nil }}))
	})
	writeCfg(t, fs, "ticks", "tick\ntick\n")

	out := c.Execute("exec ticks")
	require.True(t, out.OK())
	assert.Equal(t, 2, count)

	out = c.Execute("exec nope")
	assert.Equal(t, StatusHandlerFailed, out.Status)
	assert.ErrorIs(t, out.Err, ErrFileNotFound)

	assert.Equal(t, StatusTooFewArguments, c.Execute("exec").Status)
}

func TestExecuteFile_NestedExec(t *testing.T) {
	count := 0
	c, _, fs := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{Name: "tick", Handler: func([]string) error { count++; return nil }}))
	})
	writeCfg(t, fs, "outer", "tick\nexec inner\ntick\n")
	writeCfg(t, fs, "inner", "tick\n")

	require.NoError(t, c.ExecuteFile("outer"))
	assert.Equal(t, 3, count)
}

func TestExecuteFile_SelfRecursionIsBounded(t *testing.T) {
	count := 0
	c, rep, fs := newTestConsole(t, RunModeOffline, func(b *Builder) {
		require.NoError(t, b.Command(Command{Name: "tick", Handler: func([]string) error { count++; return nil }}))
	})
	writeCfg(t, fs, "loop", "tick\nexec loop\n")

	require.NoError(t, c.ExecuteFile("loop"))
	assert.Equal(t, MaxExecDepth, count)

	ev, ok := rep.last("failed")
	require.True(t, ok)
	assert.ErrorIs(t, ev.err, ErrExecDepth)
}

func TestExecuteFile_EmptyFile(t *testing.T) {
	c, rep, fs := newTestConsole(t, RunModeOffline, nil)
	writeCfg(t, fs, "empty", "")

	require.NoError(t, c.ExecuteFile("empty"))
	end, _ := rep.last("batch_end")
	assert.Equal(t, [2]int{0, 0}, end.val)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a"}, splitLines("a"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
}
