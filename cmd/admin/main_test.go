package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func useTempDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_FILE", filepath.Join(dir, "admin.db"))
	t.Setenv("PEPPER_FILE", filepath.Join(dir, "pepper"))
}

func TestMigrateCommand(t *testing.T) {
	useTempDatabase(t)

	require.Contains(t, execute(t, "migrate"), "migrations applied (sqlite)")
	// Second run has nothing to do.
	require.Contains(t, execute(t, "migrate"), "migrations applied (sqlite)")
}

func TestRolesCommands(t *testing.T) {
	useTempDatabase(t)

	out := execute(t, "roles", "list")
	require.Contains(t, out, "admin")
	require.Contains(t, out, "Regular user")

	out = execute(t, "roles", "add", "--name", "auditor", "--description", "Read-only access")
	require.Contains(t, out, `role "auditor" created`)

	require.Contains(t, execute(t, "roles", "list"), "Read-only access")
}

func TestRolesAdd_Duplicate(t *testing.T) {
	useTempDatabase(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"roles", "add", "--name", "admin"})
	require.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	require.Contains(t, execute(t, "version"), "App Version: v")
}
