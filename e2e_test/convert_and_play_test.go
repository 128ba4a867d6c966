//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/buzzer/cmd"
	"github.com/jsphweid/buzzer/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const written = `
name: arpeggio
tempo: {subdivision: 1/4, bpm: 120}
score:
  - {pitch: A4, offset: 0, length: 1/4}
  - {pitch: C5, offset: 1/4, length: 1/4, articulation: legato}
  - {pitch: E5, offset: 1/2, length: 1/2, articulation: staccato}
`

func setup(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arpeggio.yaml"), []byte(written), 0644))
	return dir
}

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	require.NoError(t, cmd.Run(args, &out))
	return out.String()
}

func TestConvertThenPlayDry(t *testing.T) {
	dir := setup(t)
	table := filepath.Join(dir, "table.yaml")
	run(t, "convert", filepath.Join(dir, "arpeggio.yaml"), "--lang", "yaml", "-o", table)

	loaded, err := score.Load(table)
	require.NoError(t, err)
	assert.Equal(t, []score.Entry{{440, 0, 386}, {523, 500, 500}, {659, 1000, 357}}, loaded.Notes)

	out := run(t, "play", table, "--backend", "dry")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[1], "tone     440 Hz for 386 ms")
	assert.Contains(t, lines[5], "tone     659 Hz for 357 ms")
	assert.Contains(t, lines[7], "1357ms  notone")
}

func TestConvertToFirmware(t *testing.T) {
	dir := setup(t)
	out := run(t, "convert", filepath.Join(dir, "arpeggio.yaml"), "--lang", "cpp", "--name", "ARPEGGIO")
	assert.Contains(t, out, "const Melody<3> ARPEGGIO = {{")
	assert.Contains(t, out, "{440, 0, 386},")
	assert.Contains(t, out, "{659, 1000, 357}")
}

func TestRender(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "out", "arpeggio.wav")
	run(t, "render", filepath.Join(dir, "arpeggio.yaml"), "-o", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Greater(t, len(data), 44)
}

func TestReport(t *testing.T) {
	dir := setup(t)
	out := run(t, "report", dir)
	assert.Contains(t, out, "arpeggio: 3 notes, 1357 ms, 30 bytes")
	assert.Contains(t, out, "melodies: 1")
	assert.Contains(t, out, "low notes: 0")
}

func TestPlayOnceNeedsSharedStore(t *testing.T) {
	if os.Getenv("ONESHOT_BACKEND") == "redis" {
		t.Skip("redis one-shot store configured")
	}
	dir := setup(t)
	path := filepath.Join(dir, "arpeggio.yaml")

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		err := cmd.Run([]string{"play", path, "--backend", "dry", "--once"}, &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ONESHOT_BACKEND=redis")
		assert.Empty(t, out.String())
	}
}
