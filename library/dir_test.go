package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/buzzer/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestDirIndexesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "notes: [{frequency: 440, offset: 0, duration: 10}]")
	writeFile(t, filepath.Join(dir, "b.yml"), "name: renamed\nnotes: [{frequency: 880, offset: 0, duration: 10}]")
	writeFile(t, filepath.Join(dir, "broken.yaml"), "notes: [")
	writeFile(t, filepath.Join(dir, "readme.txt"), "ignored")

	d, err := NewDir(dir)
	require.NoError(t, err)

	ctx := context.Background()
	names, err := d.List(ctx)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"a", "renamed"}, names)

	table, err := d.Get(ctx, "renamed")
	assert.NoError(err)
	assert.Equal(uint16(880), table.Notes[0].Frequency)

	_, err = d.Get(ctx, "broken")
	assert.ErrorIs(err, ErrNotFound)
}

func TestDirPutGetDelete(t *testing.T) {
	d, err := NewDir(filepath.Join(t.TempDir(), "new"))
	require.NoError(t, err)
	ctx := context.Background()

	table := &score.Table{Name: "beep", Notes: []score.Entry{{Frequency: 440, Offset: 0, Duration: 200}, {Frequency: 880, Offset: 300, Duration: 100}}}
	require.NoError(t, d.Put(ctx, table))

	got, err := d.Get(ctx, "beep")
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(table, got)

	table.Notes = table.Notes[:1]
	assert.NoError(d.Put(ctx, table))
	got, _ = d.Get(ctx, "beep")
	assert.Len(got.Notes, 1)

	assert.NoError(d.Delete(ctx, "beep"))
	_, err = d.Get(ctx, "beep")
	assert.ErrorIs(err, ErrNotFound)
	assert.ErrorIs(d.Delete(ctx, "beep"), ErrNotFound)
}

func TestDirPutReplacesFileWithOtherName(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "legacy.yml")
	writeFile(t, old, "name: tune\nnotes: []")
	d, err := NewDir(dir)
	require.NoError(t, err)

	require.NoError(t, d.Put(context.Background(), &score.Table{Name: "tune", Notes: []score.Entry{{Frequency: 440, Offset: 0, Duration: 1}}}))

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "tune.yaml"))
	assert.NoError(t, err)
}

func TestDirRejectsBadNames(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)
	for _, name := range []string{"", "../escape", "a b", "-lead"} {
		assert.Error(t, d.Put(context.Background(), &score.Table{Name: name}), name)
	}
}

func TestDirWatchPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDir(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Watch(ctx, 10*time.Millisecond) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// give the watcher a moment to register
	time.Sleep(50 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "late.yaml"), "notes: [{frequency: 440, offset: 0, duration: 10}]")

	assert.Eventually(t, func() bool {
		names, _ := d.List(context.Background())
		return len(names) == 1 && names[0] == "late"
	}, 2*time.Second, 20*time.Millisecond)
}
