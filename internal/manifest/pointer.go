package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LinkPath returns the path of the latest symlink inside docsDir.
func LinkPath(docsDir string) string {
	return filepath.Join(docsDir, LatestName)
}

// UpdateLatestPointer points docsDir/latest at the newest release in m and
// then records the same target in the alias entry before saving m to path.
// The symlink is settled before the manifest is written, so a failed link
// never leaves the manifest naming the new target.
func UpdateLatestPointer(m *Manifest, path, docsDir string) (string, error) {
	latest, ok := m.Latest()
	if !ok {
		return "", ErrNoValidVersion
	}

	target := filepath.Join(docsDir, latest)
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrMissingTarget, target)
	}

	if err := relink(LinkPath(docsDir), latest); err != nil {
		return "", err
	}

	m.PointLatest(latest)
	if err := m.Save(path); err != nil {
		return "", fmt.Errorf("saving manifest: %w", err)
	}
	return latest, nil
}

// relink makes link a relative symlink to target. An existing symlink is
// replaced by renaming a fresh, uniquely named link over it; any other file
// type is left alone.
func relink(link, target string) error {
	info, err := os.Lstat(link)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink == 0:
		return fmt.Errorf("%w: %s", ErrForeignLatest, link)
	case err == nil:
		if cur, rerr := os.Readlink(link); rerr == nil && cur == target {
			return nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return &LinkError{Link: link, Target: target, Err: err}
	}

	tmp := filepath.Join(filepath.Dir(link), "."+filepath.Base(link)+"."+uuid.NewString())
	if err := os.Symlink(target, tmp); err != nil {
		return &LinkError{Link: link, Target: target, Err: err}
	}
	if err := os.Rename(tmp, link); err != nil {
		os.Remove(tmp)
		return &LinkError{Link: link, Target: target, Err: err}
	}
	return nil
}
