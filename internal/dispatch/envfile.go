package dispatch

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// ReadEnvFile parses a GITHUB_ENV file. Lines are KEY=VALUE; the multiline
// form KEY<<DELIM ... DELIM is also accepted. A missing file is empty.
func ReadEnvFile(path string) (map[string]string, error) {
	vars := make(map[string]string)
	if path == "" {
		return vars, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return vars, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if key, delim, ok := strings.Cut(line, "<<"); ok && !strings.Contains(key, "=") {
			var body []string
			for sc.Scan() {
				if sc.Text() == delim {
					break
				}
				body = append(body, sc.Text())
			}
			vars[strings.TrimSpace(key)] = strings.Join(body, "\n")
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vars[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}
