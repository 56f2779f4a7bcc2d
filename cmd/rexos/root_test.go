package rexos

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default; command flags are package
// vars and survive between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLIWithInput(t *testing.T, dir, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	full := append([]string{
		"--db", filepath.Join(dir, "rexos.db"),
		"--config", filepath.Join(dir, "config.yaml"),
	}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, dir, "", args...)
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, dir, args...)
	if err != nil {
		t.Fatalf("%s failed: %v (stderr=%s)", strings.Join(args, " "), err, stderr)
	}
	return out
}

func TestRootHelp(t *testing.T) {
	out, _, err := runCLI(t, t.TempDir(), "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected help output")
	}
	for _, sub := range []string{"register", "habit", "workout", "meal", "note", "report", "doctor"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("expected help to list %q, got %s", sub, out)
		}
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		out, _, err := runCLI(t, dir, "init")
		if err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
		if !strings.Contains(out, "Initialized RexOS database") {
			t.Fatalf("unexpected init output: %s", out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	if !strings.Contains(out, "rexos dev") || !strings.Contains(out, "schema: v") {
		t.Fatalf("unexpected version output: %s", out)
	}
}

func TestConfigInitThenShow(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "config", "init")
	if _, _, err := runCLI(t, dir, "config", "init"); err == nil {
		t.Fatalf("expected second config init without --force to fail")
	}
	out := mustRun(t, dir, "config", "show")
	if !strings.Contains(out, "log_level: warn") || !strings.Contains(out, "rexos.db") {
		t.Fatalf("unexpected config show output: %s", out)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "reset")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
}
