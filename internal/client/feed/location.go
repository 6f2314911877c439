package feed

import (
	"net/url"
	"strings"
	"sync"
)

// URL is the slice of the address bar the controller cares about: path,
// query string and fragment.
type URL struct {
	Path     string
	Query    url.Values
	Fragment string
}

// ParseURL parses a "/path?query#fragment" string.
func ParseURL(raw string) (URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, err
	}
	return URL{Path: u.Path, Query: u.Query(), Fragment: u.Fragment}, nil
}

func (u URL) String() string {
	var b strings.Builder
	b.WriteString(u.Path)
	if len(u.Query) > 0 {
		b.WriteString("?")
		b.WriteString(u.Query.Encode())
	}
	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// clone returns a deep copy so the controller can derive a next URL without
// mutating the current one.
func (u URL) clone() URL {
	q := make(url.Values, len(u.Query))
	for k, v := range u.Query {
		q[k] = append([]string(nil), v...)
	}
	return URL{Path: u.Path, Query: q, Fragment: u.Fragment}
}

// Location is the address-bar collaborator. The browser implementation would
// wrap window.location/history; the terminal client keeps one in memory.
type Location interface {
	// Current returns the location as the user sees it.
	Current() URL
	// Replace rewrites the location without creating a history entry.
	Replace(URL)
}

// MemoryLocation is an in-process Location. It doubles as the test fake and
// as the REPL's address bar.
type MemoryLocation struct {
	mu       sync.Mutex
	current  URL
	Replaced []URL
}

func NewMemoryLocation(path string) *MemoryLocation {
	return &MemoryLocation{current: URL{Path: path, Query: url.Values{}}}
}

func (l *MemoryLocation) Current() URL {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.clone()
}

func (l *MemoryLocation) Replace(u URL) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = u.clone()
	l.Replaced = append(l.Replaced, u.clone())
}

// Set overwrites the location as an externally-driven navigation would
// (pasting a link, back/forward). It does not count as a controller write.
func (l *MemoryLocation) Set(u URL) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = u.clone()
}
