package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/docsite/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	outR, outW, perr := os.Pipe()
	require.NoError(t, perr)
	errR, errW, perr := os.Pipe()
	require.NoError(t, perr)

	oldOut, oldErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	err = newApp().Run(context.Background(), append([]string{"docs-version"}, args...))
	os.Stdout, os.Stderr = oldOut, oldErr
	outW.Close()
	errW.Close()

	o, rerr := io.ReadAll(outR)
	require.NoError(t, rerr)
	e, rerr := io.ReadAll(errR)
	require.NoError(t, rerr)
	return string(o), string(e), err
}

func TestRun_OutsideRepo(t *testing.T) {
	stdout, _, err := runApp(t, "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "unknown\n", stdout)
}

func TestRun_TagOutsideRepoFails(t *testing.T) {
	_, _, err := runApp(t, "--dir", t.TempDir(), "--tag")
	assert.Error(t, err)
}

func TestRun_VersionsFallback(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, err := runApp(t, "--dir", dir, "--versions", filepath.Join(dir, "versions.json"))
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var got manifest.SiteContext
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "latest", got.CurrentVersion)
	assert.Equal(t, []manifest.Entry{manifest.DefaultEntry()}, got.Versions)
	assert.Equal(t, "latest", got.Selector.Current.Slug)
	require.Len(t, got.Selector.Active, 1)
	assert.Equal(t, "/latest/", got.Selector.Active[0].URLs.Documentation)
}

func TestRun_VersionsFromManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "versions.json")
	m := &manifest.Manifest{Versions: []manifest.Entry{
		{Name: "latest", Version: "latest", URL: "/v0.2.0/", Preferred: true},
		manifest.NewEntry("v0.2.0"),
	}}
	require.NoError(t, m.Save(path))

	stdout, _, err := runApp(t, "--dir", dir, "--versions", path)
	require.NoError(t, err)

	var got manifest.SiteContext
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, m.Versions, got.Versions)
	assert.Equal(t, []string{"latest", "v0.2.0"}, []string{got.Selector.Active[0].Slug, got.Selector.Active[1].Slug})
}

func TestRun_VersionsMalformedWarns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "versions.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	stdout, stderr, err := runApp(t, "--dir", dir, "--versions", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "could not load "+path)

	var got manifest.SiteContext
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []manifest.Entry{manifest.DefaultEntry()}, got.Versions)
}
