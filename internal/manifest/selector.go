package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// DefaultEntry is the single alias entry a site renders with when no
// manifest is available.
func DefaultEntry() Entry {
	return Entry{Name: LatestName, Version: LatestName, URL: URLFor(LatestName), Preferred: true}
}

// LoadOrDefault loads the manifest at path for page rendering. A missing file
// yields a manifest holding only DefaultEntry. An unreadable or malformed file
// yields the same fallback together with the load error, so callers can warn
// and still render.
func LoadOrDefault(path string) (*Manifest, error) {
	fallback := &Manifest{Versions: []Entry{DefaultEntry()}}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fallback, nil
	}
	m, err := Load(path)
	if err != nil {
		return fallback, err
	}
	return m, nil
}

// SelectorVersion is one choice offered by the version dropdown.
type SelectorVersion struct {
	Slug string       `json:"slug"`
	URLs SelectorURLs `json:"urls"`
}

type SelectorURLs struct {
	Documentation string `json:"documentation"`
}

type SelectorCurrent struct {
	Slug string `json:"slug"`
}

// Selector is the data the theme's version dropdown reads.
type Selector struct {
	Active  []SelectorVersion `json:"active"`
	Current SelectorCurrent   `json:"current"`
}

// CurrentSlug maps a release string to the slug of the page being built.
// An empty release means the build is not tied to a tag and renders as latest.
func CurrentSlug(release string) string {
	if release == "" {
		return LatestName
	}
	return "v" + release
}

// Selector builds the dropdown data for a build of release.
func (m *Manifest) Selector(release string) Selector {
	active := make([]SelectorVersion, 0, len(m.Versions))
	for _, e := range m.Versions {
		active = append(active, SelectorVersion{
			Slug: e.Version,
			URLs: SelectorURLs{Documentation: e.URL},
		})
	}
	return Selector{Active: active, Current: SelectorCurrent{Slug: CurrentSlug(release)}}
}

// SiteContext is the version data handed to the page templates.
type SiteContext struct {
	CurrentVersion string   `json:"current_version"`
	Versions       []Entry  `json:"versions"`
	Selector       Selector `json:"rtd_versions"`
}

// NewSiteContext assembles the template data for a build of release.
func NewSiteContext(m *Manifest, release string) SiteContext {
	return SiteContext{
		CurrentVersion: CurrentSlug(release),
		Versions:       m.Versions,
		Selector:       m.Selector(release),
	}
}

// Marshal renders c the same way manifests are written.
func (c SiteContext) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
