package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSyntheticTSV writes an expression file with the label distribution of
// the real dataset (42 at -1, 37 at +1) and a handful of informative
// columns, so the whole pipeline has signal to find.
func writeSyntheticTSV(t *testing.T, path string, nFeatures int) {
	t.Helper()

	rng := rand.New(rand.NewPCG(7, 7))
	var b strings.Builder

	b.WriteString("sample")
	for j := 0; j < nFeatures; j++ {
		fmt.Fprintf(&b, "\tg%d", j+1)
	}
	b.WriteString("\ty\n")

	for i := 0; i < 79; i++ {
		label := -1
		if i >= 42 {
			label = 1
		}
		fmt.Fprintf(&b, "s%d", i+1)
		for j := 0; j < nFeatures; j++ {
			v := rng.Float64() * 10
			// The first five columns carry the class signal.
			if j < 5 && label == 1 {
				v += 40
			}
			fmt.Fprintf(&b, "\t%.4f", v)
		}
		fmt.Fprintf(&b, "\t%d\n", label)
	}

	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func TestRunEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("full pipeline run")
	}

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "expr.tsv")
	outDir := filepath.Join(dir, "out")
	// More columns than the top-K filter keeps, so the filtered runs are
	// exercised too.
	writeSyntheticTSV(t, dataPath, 120)

	require.NoError(t, run(dataPath, outDir))

	info, err := os.Stat(filepath.Join(outDir, "test_accuracy.png"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "nope.tsv"), dir)
	assert.Error(t, err)
}
