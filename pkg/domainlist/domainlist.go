// Package domainlist loads the set of domains to check
package domainlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the domain list read when no path is given
const DefaultFile = "domains.json"

var (
	// ErrNotFound is returned when the list file does not exist
	ErrNotFound = errors.New("domain list not found")

	// ErrInvalidFormat is returned for JSON that is neither an array of
	// names nor an object with a "domains" array
	ErrInvalidFormat = errors.New("invalid domain list format")
)

// file is the object shape of the list file
type file struct {
	Domains *[]string `json:"domains"`
}

// Resolve returns the absolute location of path, relative paths being
// taken from the current working directory
func Resolve(path string) string {
	if path == "" {
		path = DefaultFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(wd, path)
}

// Load reads the domain list at path. On any failure it returns an empty
// list together with the reason; callers treat that as nothing to check.
func Load(path string) ([]string, error) {
	path = Resolve(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	domains, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return domains, nil
}

// Parse decodes a domain list document
func Parse(data []byte) ([]string, error) {
	if !json.Valid(data) {
		var v interface{}
		err := json.Unmarshal(data, &v)
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return list, nil
	case strings.HasPrefix(trimmed, "{"):
		var f file
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if f.Domains == nil {
			return nil, fmt.Errorf("%w: missing \"domains\" field", ErrInvalidFormat)
		}
		return *f.Domains, nil
	default:
		return nil, ErrInvalidFormat
	}
}

// ParseList splits a comma-separated list of names, trimming whitespace
// and dropping empty entries
func ParseList(csv string) []string {
	var out []string
	for _, d := range strings.Split(csv, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
