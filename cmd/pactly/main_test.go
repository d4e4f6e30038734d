package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pactly parses args against a fresh command tree and runs them, the way
// main does, returning what the command printed.
func pactly(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var a app
	parser, err := kong.New(&a, options()...)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	err = run(&a, kctx, out)
	return out.String(), err
}

func TestWorkflow(t *testing.T) {
	store := filepath.Join(t.TempDir(), "pactly.json")
	config := "--config=" + store

	out, err := pactly(t, config, "init", "--no-seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized pactly storage at: "+store)

	out, err = pactly(t, config, "login", "morgan@example.com", "--password=secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Morgan <morgan@example.com>")

	out, err = pactly(t, config, "pact", "create", "Run 5k", "--identity=I am a runner")
	require.NoError(t, err)
	m := regexp.MustCompile(`Created pact Run 5k \(([0-9a-f-]+)\)`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]

	out, err = pactly(t, config, "pact", "checkin", id, "--mood=great")
	require.NoError(t, err)
	assert.Contains(t, out, "Streak: 1")

	out, err = pactly(t, config, "pact", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Run 5k")

	out, err = pactly(t, config, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Available backups (1 total")

	_, err = pactly(t, config, "logout")
	require.NoError(t, err)
	_, err = pactly(t, config, "pact", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestCommandsNeedInitializedStore(t *testing.T) {
	store := filepath.Join(t.TempDir(), "pactly.json")

	_, err := pactly(t, "--config="+store, "room", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pactly init")
}

func TestNeedsLoad(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"init", false},
		{"doctor", false},
		{"keyring set <connection-string>", false},
		{"keyring status", false},
		{"pact list", true},
		{"room show <id>", true},
		{"initiative", true},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.want, needsLoad(tt.command))
		})
	}
}
