package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr   error
	steps   []int
	forced  int
	target  uint
	version uint
	dirty   bool
	verErr  error
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.target = version
	return nil
}

func (f *fakeMigrator) Force(version int) error {
	f.forced = version
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.verErr }

func runCommand(t *testing.T, m migrator, name string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := commands[name].run(m, args, &out, logging.NewNop())
	return out.String(), err
}

func TestCommands_Up(t *testing.T) {
	_, err := runCommand(t, &fakeMigrator{upErr: migrate.ErrNoChange}, "up")
	require.NoError(t, err)

	boom := errors.New("dirty database version 3")
	_, err = runCommand(t, &fakeMigrator{upErr: boom}, "up")
	require.ErrorIs(t, err, boom)
}

func TestCommands_Down(t *testing.T) {
	m := &fakeMigrator{}
	_, err := runCommand(t, m, "down")
	require.NoError(t, err)
	_, err = runCommand(t, m, "down", "3")
	require.NoError(t, err)
	assert.Equal(t, []int{-1, -3}, m.steps)

	for _, bad := range []string{"0", "-2", "two"} {
		_, err = runCommand(t, m, "down", bad)
		assert.Error(t, err, bad)
	}
}

func TestCommands_Version(t *testing.T) {
	out, err := runCommand(t, &fakeMigrator{verErr: migrate.ErrNilVersion}, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: none\ndirty: false\n", out)

	out, err = runCommand(t, &fakeMigrator{version: 1771776034, dirty: true}, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: 1771776034\ndirty: true\n", out)
}

func TestCommands_ForceAndGoto(t *testing.T) {
	m := &fakeMigrator{}
	_, err := runCommand(t, m, "force", "7")
	require.NoError(t, err)
	assert.Equal(t, 7, m.forced)

	_, err = runCommand(t, m, "goto", " 12 ")
	require.NoError(t, err)
	assert.Equal(t, uint(12), m.target)

	_, err = runCommand(t, m, "goto")
	assert.Error(t, err)
	_, err = runCommand(t, m, "force", "-1")
	assert.Error(t, err)
}

func TestFindMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := findMigrationsDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	missing := filepath.Join(dir, "absent")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = findMigrationsDir(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}
