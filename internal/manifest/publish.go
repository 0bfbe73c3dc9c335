package manifest

import "errors"

// Result describes what Publish changed.
type Result struct {
	Added     bool
	Reordered bool
	Latest    string
	// AliasURL is the url recorded in the "latest" entry, empty when the
	// manifest has no such entry.
	AliasURL string
}

// Publish records version in the manifest at path and repoints the latest
// symlink in docsDir. The manifest is always resorted and rewritten, so a
// rerun repairs any earlier partial run. When no release qualifies as latest
// the returned error wraps ErrNoValidVersion and the result is still valid.
func Publish(path, version, docsDir string) (*Result, error) {
	m, ch, err := AddVersion(path, version)
	if err != nil {
		return nil, err
	}
	res := &Result{Added: ch.Added, Reordered: ch.Reordered}
	latest, err := UpdateLatestPointer(m, path, docsDir)
	if err != nil {
		if errors.Is(err, ErrNoValidVersion) {
			return res, err
		}
		return nil, err
	}
	res.Latest = latest
	res.AliasURL, _ = m.LatestURL()
	return res, nil
}
