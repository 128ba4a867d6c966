package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "c": 2, "a": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Len(t, GetKeys(m), 3)
}

func TestMinMaxClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Min(2, 5))
	assert.Equal(5, Max(2, 5))
	assert.Equal(uint32(10), Clamp(uint32(50), 0, 10))
	assert.Equal(-3, Clamp(-9, -3, 3))
	assert.Equal(1, Clamp(1, -3, 3))
}

func TestSum(t *testing.T) {
	assert.Equal(t, uint64(6), Sum([]uint32{1, 2, 3}))
	assert.Equal(t, uint64(0), Sum([]uint8{}))
}

func TestGatherPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.YML", "c.txt", "sub/d.yaml"} {
		p := filepath.Join(dir, name)
		assert.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		assert.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}

	paths, err := GatherPaths(dir, ".yaml", ".yml")
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.YML"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "sub", "d.yaml"),
	}, paths)
}
