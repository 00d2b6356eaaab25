package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := rootCmd.Find(args)
	require.NoError(t, err)
	return cmd
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"serve"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"user", "create"},
	} {
		cmd := findCommand(t, path...)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestMigrateDownDefaults(t *testing.T) {
	steps, err := findCommand(t, "migrate", "down").Flags().GetInt("steps")
	require.NoError(t, err)
	assert.Equal(t, 1, steps)
}

func TestNewUserInput(t *testing.T) {
	cmd := findCommand(t, "user", "create")
	t.Cleanup(func() {
		for _, name := range []string{"username", "email", "password", "blog-name", "inactive"} {
			f := cmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})

	require.NoError(t, cmd.ParseFlags([]string{
		"--username", "alice",
		"--email", "alice@example.com",
		"--password", "s3cret-pass",
		"--blog-name", "Notes",
		"--inactive",
	}))

	in := newUserInput(cmd)
	assert.Equal(t, "alice", in.Username)
	assert.Equal(t, "alice@example.com", in.Email)
	assert.Equal(t, "s3cret-pass", in.Password)
	assert.Equal(t, "Notes", in.BlogName)
	assert.False(t, in.IsActive)
}
