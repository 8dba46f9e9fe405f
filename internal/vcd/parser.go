package vcd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseHeader reads the definitions section of a VCD stream, up to and
// including the $enddefinitions line, and returns the ordered path → def
// mapping built from the $var declarations encountered.
//
// Scope nesting ($scope / $upscope) determines the hierarchical path; scope
// names are joined with "/". Blank lines and unrecognized directives are
// skipped. A duplicate path overwrites the earlier declaration. If the
// stream ends before $enddefinitions, ParseHeader fails with
// ErrMalformedHeader.
func ParseHeader(r io.Reader) (*PathMap, error) {
	scanner := bufio.NewScanner(r)
	scopes := make([]string, 0, 8)
	paths := NewPathMap()

	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "$enddefinitions":
			return paths, nil
		case "$scope":
			if len(words) >= 3 {
				scopes = append(scopes, words[2])
			}
		case "$upscope":
			if len(scopes) > 0 {
				scopes = scopes[:len(scopes)-1]
			}
		case "$var":
			if len(words) < 5 {
				continue
			}
			width, err := strconv.Atoi(words[2])
			if err != nil {
				return nil, fmt.Errorf("%w: bad $var width %q", ErrMalformedHeader, words[2])
			}
			path := strings.Join(append(scopes[:len(scopes):len(scopes)], words[4]), "/")
			paths.Set(path, &SignalDef{
				Name:  words[4],
				ID:    words[3],
				Width: width,
				Path:  path,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading VCD header: %w", err)
	}
	return nil, fmt.Errorf("%w: missing $enddefinitions", ErrMalformedHeader)
}

// NormalizePath strips leading and trailing hierarchy separators from a
// requested signal path.
func NormalizePath(path string) string {
	return strings.Trim(path, "/")
}

// FilterPaths returns a new PathMap holding exactly the requested paths, in
// request order. Each requested path is normalized first. If any path is
// absent from all, FilterPaths fails with ErrSignalNotFound naming the
// missing path and returns no partial result.
func FilterPaths(all *PathMap, requested []string) (*PathMap, error) {
	filtered := NewPathMap()
	for _, path := range requested {
		path = NormalizePath(path)
		def := all.Get(path)
		if def == nil {
			return nil, fmt.Errorf("%w: %s", ErrSignalNotFound, path)
		}
		filtered.Set(path, def)
	}
	return filtered, nil
}
