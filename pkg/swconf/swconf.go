package swconf

import (
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/latte/pkg/errors"
)

const separator = "="

// Config is an ordered set of key=value records
type Config struct {
	keys   []string
	values map[string]string
}

// New returns an empty Config
func New() *Config {
	return &Config{values: make(map[string]string)}
}

// FromMap builds a Config from m. Keys are added in the order given by keys;
// keys missing from m are skipped.
func FromMap(m map[string]string, keys ...string) *Config {
	c := New()
	for _, k := range keys {
		if v, ok := m[k]; ok {
			c.Set(k, v)
		}
	}
	return c
}

// Parse reads content into a Config
func Parse(content string) (*Config, error) {
	c := New()
	for i, line := range splitLines(content) {
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, separator)
		if !found {
			return nil, errors.Newf(errors.ErrConfigParse, "line %d: missing '%s' in %q", i+1, separator, line).
				WithDetail("line", i+1)
		}
		if key == "" {
			return nil, errors.Newf(errors.ErrConfigParse, "line %d: empty key", i+1).
				WithDetail("line", i+1)
		}
		c.Set(key, value)
	}
	return c, nil
}

// splitLines breaks content at every line boundary: "\r\n", "\n", "\r",
// "\v", "\f", the information separators \x1c to \x1e, NEL, and the
// Unicode line and paragraph separators. A final boundary does not start an
// empty trailing line.
func splitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, content[start:i])
		i += size
		if r == '\r' && i < len(content) && content[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Serialize renders c as key=value lines in insertion order
func Serialize(c *Config) string {
	if c == nil || len(c.keys) == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range c.keys {
		b.WriteString(k)
		b.WriteString(separator)
		b.WriteString(c.values[k])
		b.WriteByte('\n')
	}
	return b.String()
}

// String implements fmt.Stringer
func (c *Config) String() string {
	return Serialize(c)
}

// Get returns the value for key
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether key is present
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Set adds or replaces a record. A new key is appended at the end.
func (c *Config) Set(key, value string) {
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Delete removes key and reports whether it was present
func (c *Config) Delete(key string) bool {
	if _, exists := c.values[key]; !exists {
		return false
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order
func (c *Config) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len returns the number of records
func (c *Config) Len() int {
	return len(c.keys)
}

// Map returns a copy of the records as a map
func (c *Config) Map() map[string]string {
	m := make(map[string]string, len(c.values))
	for k, v := range c.values {
		m[k] = v
	}
	return m
}

// ValidKey reports whether key can be stored and read back unchanged
func ValidKey(key string) bool {
	return key != "" && !strings.Contains(key, separator) && strings.IndexFunc(key, isLineBreak) < 0
}

// ValidValue reports whether value can be stored and read back unchanged
func ValidValue(value string) bool {
	return strings.IndexFunc(value, isLineBreak) < 0
}
