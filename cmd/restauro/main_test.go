package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shamspias/restauro"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	b := restauro.NewBitmap(32, 24)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = uint8(150 + i%40)
		b.Pix[i+1] = uint8(120 + i%30)
		b.Pix[i+2] = uint8(90 + i%20)
		b.Pix[i+3] = 255
	}
	path := filepath.Join(dir, "scan.png")
	require.NoError(t, restauro.Save(b.NRGBA(), path, 0))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestListPresets(t *testing.T) {
	code, out, _ := runCLI("-list-presets")
	assert.Equal(t, 0, code)
	for _, name := range restauro.PresetNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "sepiaReduction=30")
}

func TestUsage(t *testing.T) {
	code, _, errOut := runCLI()
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Usage: restauro")
}

func TestBadFlag(t *testing.T) {
	code, _, _ := runCLI("-nope")
	assert.Equal(t, 2, code)
}

func TestUnknownPreset(t *testing.T) {
	dir := t.TempDir()
	code, _, errOut := runCLI("-preset", "vivid", writePNG(t, dir))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown preset")
}

func TestRestoreEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir)
	out := filepath.Join(dir, "out.jpg")

	code, stdout, stderr := runCLI("-preset", "cores", "-denoise", "0", "-v", in, out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Restauro Result: 32x24")
	assert.Contains(t, stderr, "quantize")

	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestRestoreDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir)

	code, _, stderr := runCLI(in)
	require.Equal(t, 0, code, stderr)
	_, err := os.Stat(filepath.Join(dir, "scan_restored.png"))
	assert.NoError(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	code, out, _ := runCLI("-analyze", writePNG(t, dir))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Dimensions:    32 × 24")
	assert.Contains(t, out, "Recommended preset: ")
	assert.Contains(t, out, "Suggested sepia reduction: ")
}

func TestBuildAdjustments(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "adj.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("warmth: 20\nclarity: 90\n"), 0o644))

	adj, err := buildAdjustments("suave", cfg, map[restauro.Param]float64{restauro.Exposure: -5}, false)
	require.NoError(t, err)
	assert.Equal(t, 20.0, adj.Warmth, "file overrides preset")
	assert.Equal(t, 90.0, adj.Clarity)
	assert.Equal(t, -5.0, adj.Exposure, "flags override file")
	assert.Equal(t, 32.0, adj.Denoise, "untouched fields keep the preset value")

	adj, err = buildAdjustments("suave", cfg, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 60.0, adj.Clarity)
}

func TestBuildAdjustmentsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "adj.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("gamma: 2\n"), 0o644))

	_, err := buildAdjustments("auto", cfg, nil, false)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse config"))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	adj, err := buildAdjustments("neutral", empty, nil, false)
	require.NoError(t, err)
	assert.True(t, adj.IsNeutral())

	_, err = buildAdjustments("auto", filepath.Join(dir, "missing.yaml"), nil, false)
	assert.Error(t, err)
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "dir/photo_restored.jpg", defaultOutput("dir/photo.jpg"))
	assert.Equal(t, "scan_restored", defaultOutput("scan"))
}
