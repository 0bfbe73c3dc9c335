package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// LatestName is the sentinel entry name that aliases the newest release.
const LatestName = "latest"

type Entry struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	URL       string `json:"url"`
	Preferred bool   `json:"preferred"`
}

// IsLatest reports whether e is the "latest" alias entry.
func (e Entry) IsLatest() bool {
	return e.Name == LatestName
}

type Manifest struct {
	Versions []Entry `json:"versions"`
}

// URLFor returns the root-relative docs path for a version.
func URLFor(version string) string {
	return "/" + version + "/"
}

// NewEntry builds the entry added for a freshly published version.
func NewEntry(version string) Entry {
	return Entry{
		Name:      version,
		Version:   version,
		URL:       URLFor(version),
		Preferred: false,
	}
}

// Load reads the manifest at path. Returns an empty manifest if not found.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Manifest{Versions: []Entry{}}, nil
		}
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Versions == nil {
		m.Versions = []Entry{}
	}
	return &m, nil
}

// Marshal renders the manifest as 2-space indented JSON with a trailing newline.
func (m *Manifest) Marshal() ([]byte, error) {
	out := Manifest{Versions: m.Versions}
	if out.Versions == nil {
		out.Versions = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the manifest to path atomically.
func (m *Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// Has reports whether version is already published. A "latest" request also
// matches an existing alias entry so the sentinel is never duplicated.
func (m *Manifest) Has(version string) bool {
	for _, e := range m.Versions {
		if e.Version == version {
			return true
		}
		if version == LatestName && e.IsLatest() {
			return true
		}
	}
	return false
}

// Add appends an entry for version unless it already exists, then resorts.
// It reports whether an entry was added.
func (m *Manifest) Add(version string) bool {
	added := false
	if !m.Has(version) {
		m.Versions = append(m.Versions, NewEntry(version))
		added = true
	}
	m.Sort()
	return added
}

// Latest returns the name of the newest real release, skipping the alias
// entry and entries with blank names or versions.
func (m *Manifest) Latest() (string, bool) {
	var best *Entry
	var bestKey Key
	for i := range m.Versions {
		e := &m.Versions[i]
		name := strings.TrimSpace(e.Name)
		version := strings.TrimSpace(e.Version)
		if name == "" || version == "" || name == LatestName || version == LatestName {
			continue
		}
		k := ParseKey(e.Name)
		if best == nil || k.Compare(bestKey) > 0 {
			best, bestKey = e, k
		}
	}
	if best == nil {
		return "", false
	}
	return best.Name, true
}

// PointLatest sets the alias entry's url to target. It does not create the
// entry; it reports whether one was found.
func (m *Manifest) PointLatest(target string) bool {
	for i := range m.Versions {
		if m.Versions[i].IsLatest() {
			m.Versions[i].URL = URLFor(target)
			return true
		}
	}
	return false
}

// LatestURL returns the alias entry's url, if the entry exists.
func (m *Manifest) LatestURL() (string, bool) {
	for _, e := range m.Versions {
		if e.IsLatest() {
			return e.URL, true
		}
	}
	return "", false
}

// Change reports what AddVersion did to the manifest.
type Change struct {
	Added     bool
	Reordered bool
}

// AddVersion loads the manifest at path, adds version if missing, resorts and
// persists it. The file is rewritten even when nothing was added so manual
// edits are normalized.
func AddVersion(path, version string) (*Manifest, Change, error) {
	if strings.TrimSpace(version) == "" {
		return nil, Change{}, fmt.Errorf("version must not be empty")
	}
	if !utf8.ValidString(version) {
		return nil, Change{}, fmt.Errorf("version %q is not valid UTF-8", version)
	}
	m, err := Load(path)
	if err != nil {
		return nil, Change{}, fmt.Errorf("loading manifest: %w", err)
	}
	ch := Change{Reordered: !m.IsSorted()}
	ch.Added = m.Add(version)
	if err := m.Save(path); err != nil {
		return nil, Change{}, fmt.Errorf("saving manifest: %w", err)
	}
	return m, ch, nil
}
