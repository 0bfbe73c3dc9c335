package manifest

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
)

var keyRe = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)`)

// Key is the (major, minor, patch) ordering key of a version name.
type Key struct {
	Major, Minor, Patch int
}

// ParseKey parses names shaped like v1.2.3 (anything may follow the patch
// number). Everything else, "latest" included, is the zero key.
func ParseKey(name string) Key {
	m := keyRe.FindStringSubmatch(name)
	if m == nil {
		return Key{}
	}
	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Key{}
		}
		parts[i] = n
	}
	return Key{Major: parts[0], Minor: parts[1], Patch: parts[2]}
}

// Compare returns -1, 0 or +1 as k is older than, equal to or newer than o.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp.Compare(k.Patch, o.Patch)
}

func (k Key) String() string {
	return "v" + strconv.Itoa(k.Major) + "." + strconv.Itoa(k.Minor) + "." + strconv.Itoa(k.Patch)
}

// Sort puts the "latest" alias first and every other entry after it, newest
// first. Entries with equal keys keep their relative order. When the alias
// appears more than once only its first occurrence is kept.
func (m *Manifest) Sort() {
	slices.SortStableFunc(m.Versions, func(a, b Entry) int {
		switch {
		case a.IsLatest() && b.IsLatest():
			return 0
		case a.IsLatest():
			return -1
		case b.IsLatest():
			return 1
		}
		return ParseKey(b.Name).Compare(ParseKey(a.Name))
	})
	n := 0
	for n < len(m.Versions) && m.Versions[n].IsLatest() {
		n++
	}
	if n > 1 {
		m.Versions = slices.Delete(m.Versions, 1, n)
	}
}

// IsSorted reports whether the manifest is already in canonical order with at
// most one alias entry.
func (m *Manifest) IsSorted() bool {
	for i := 1; i < len(m.Versions); i++ {
		prev, cur := m.Versions[i-1], m.Versions[i]
		if cur.IsLatest() {
			return false
		}
		if prev.IsLatest() {
			continue
		}
		if ParseKey(prev.Name).Compare(ParseKey(cur.Name)) < 0 {
			return false
		}
	}
	return true
}
