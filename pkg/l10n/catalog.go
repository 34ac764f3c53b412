// Package l10n provides the message catalog used to format localized text.
//
// A catalog is a TOML file mapping message keys to templates:
//
//	locale = "en"
//
//	[messages]
//	clicked = "Clicked {count} times"
//	greeting = "Hello, {name}!"
//
// Placeholders name an argument in braces. A doubled brace ("{{" or "}}")
// is a literal brace. A placeholder without a matching argument is kept
// verbatim so missing data is visible instead of silently dropped.
package l10n

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/go-drift/strata/pkg/errors"
)

// Catalog maps message keys to templates for one locale. It implements
// core.MessageFormatter.
type Catalog struct {
	locale   string
	messages map[string]string
	fallback *Catalog
}

type file struct {
	Locale   string            `toml:"locale"`
	Messages map[string]string `toml:"messages"`
}

// New builds a catalog from an in-memory table.
func New(locale string, messages map[string]string) *Catalog {
	return &Catalog{locale: locale, messages: maps.Clone(messages)}
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.Error{Op: "l10n.Load", Kind: errors.KindConfig, Err: err}
	}
	c, err := Parse(data)
	if err != nil {
		return nil, &errors.Error{Op: "l10n.Load", Kind: errors.KindConfig, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return c, nil
}

// Parse decodes a catalog document and checks every template.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for _, key := range slices.Sorted(maps.Keys(f.Messages)) {
		if err := validate(f.Messages[key]); err != nil {
			return nil, fmt.Errorf("message %q: %w", key, err)
		}
	}
	return New(f.Locale, f.Messages), nil
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() string { return c.locale }

// WithFallback returns a copy of c that resolves keys it lacks from
// fallback.
func (c *Catalog) WithFallback(fallback *Catalog) *Catalog {
	cp := *c
	cp.fallback = fallback
	return &cp
}

// Has reports whether key resolves in c or its fallbacks.
func (c *Catalog) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Keys returns the catalog's own keys in sorted order.
func (c *Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c.messages))
}

func (c *Catalog) lookup(key string) (string, bool) {
	for cat := c; cat != nil; cat = cat.fallback {
		if tmpl, ok := cat.messages[key]; ok {
			return tmpl, true
		}
	}
	return "", false
}

// Format renders the message for key with args substituted. An unknown
// key formats as the key itself.
func (c *Catalog) Format(key string, args map[string]any) string {
	tmpl, ok := c.lookup(key)
	if !ok {
		return key
	}
	return expand(tmpl, args)
}

func expand(tmpl string, args map[string]any) string {
	if !strings.ContainsAny(tmpl, "{}") {
		return tmpl
	}
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]
		switch {
		case ch == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case ch == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case ch == '{':
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				b.WriteString(tmpl[i:])
				return b.String()
			}
			name := tmpl[i+1 : i+end]
			if v, ok := args[name]; ok {
				fmt.Fprint(&b, v)
			} else {
				b.WriteString(tmpl[i : i+end+1])
			}
			i += end
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func validate(tmpl string) error {
	for i := 0; i < len(tmpl); i++ {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return fmt.Errorf("unclosed placeholder at offset %d", i)
			}
			name := tmpl[i+1 : i+end]
			if name == "" || strings.ContainsAny(name, "{ \t") {
				return fmt.Errorf("invalid placeholder %q", tmpl[i:i+end+1])
			}
			i += end
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				i++
				continue
			}
			return fmt.Errorf("unmatched '}' at offset %d", i)
		}
	}
	return nil
}
