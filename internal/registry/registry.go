// Package registry holds the fixed list of managed repositories.
package registry

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/sahilm/fuzzy"

	"gcl/internal/domain"
)

//go:embed registry.toml
var defaultDocument []byte

type document struct {
	Repos []domain.RepoEntry `toml:"repo"`
}

// Registry is an ordered, immutable list of repository entries
type Registry struct {
	entries []domain.RepoEntry
	index   map[string]int
}

// Default returns the registry compiled into the binary
func Default() *Registry {
	r, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded registry is invalid: %v", err))
	}
	return r
}

// Parse decodes a registry document and validates it
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	return New(doc.Repos)
}

// New builds a registry from entries, rejecting empty or duplicate names
func New(entries []domain.RepoEntry) (*Registry, error) {
	r := &Registry{
		entries: make([]domain.RepoEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" || e.URL == "" {
			return nil, fmt.Errorf("registry entry %q: name and url are required", e.Name)
		}
		if strings.ContainsAny(e.Name, `/\`) {
			return nil, fmt.Errorf("registry entry %q: name must be a single path component", e.Name)
		}
		if _, dup := r.index[e.Name]; dup {
			return nil, fmt.Errorf("registry entry %q: duplicate name", e.Name)
		}
		switch e.Visibility {
		case domain.Public, domain.Private:
		case "":
			e.Visibility = domain.Public
		default:
			return nil, fmt.Errorf("registry entry %q: unknown visibility %q", e.Name, e.Visibility)
		}
		r.index[e.Name] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// Len returns the number of entries
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns a copy of all entries in registry order
func (r *Registry) Entries() []domain.RepoEntry {
	out := make([]domain.RepoEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// At returns the entry at position i
func (r *Registry) At(i int) domain.RepoEntry { return r.entries[i] }

// Names returns entry names in registry order
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entry by exact name
func (r *Registry) Lookup(name string) (domain.RepoEntry, bool) {
	i, ok := r.index[name]
	if !ok {
		return domain.RepoEntry{}, false
	}
	return r.entries[i], true
}

// UnknownNamesError is returned by Select when an argument matches nothing
type UnknownNamesError struct {
	Names       []string
	Suggestions map[string][]string
}

func (e *UnknownNamesError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid repository name(s): %s", strings.Join(e.Names, ", "))
	for _, n := range e.Names {
		if s := e.Suggestions[n]; len(s) > 0 {
			fmt.Fprintf(&b, "\n  %s: did you mean %s?", n, strings.Join(s, ", "))
		}
	}
	return b.String()
}

// Select resolves names or glob patterns into entries, preserving registry order.
// An empty argument list selects every entry.
func (r *Registry) Select(args []string) ([]domain.RepoEntry, error) {
	if len(args) == 0 {
		return r.Entries(), nil
	}

	chosen := make(map[int]bool)
	var unknown []string
	for _, arg := range args {
		matched := false
		if i, ok := r.index[arg]; ok {
			chosen[i] = true
			matched = true
		} else if doublestar.ValidatePattern(arg) {
			for i, e := range r.entries {
				if ok, _ := doublestar.Match(arg, e.Name); ok {
					chosen[i] = true
					matched = true
				}
			}
		}
		if !matched {
			unknown = append(unknown, arg)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownNamesError{Names: unknown, Suggestions: r.suggest(unknown)}
	}

	idx := make([]int, 0, len(chosen))
	for i := range chosen {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	out := make([]domain.RepoEntry, len(idx))
	for j, i := range idx {
		out[j] = r.entries[i]
	}
	return out, nil
}

func (r *Registry) suggest(unknown []string) map[string][]string {
	names := r.Names()
	out := make(map[string][]string, len(unknown))
	for _, u := range unknown {
		matches := fuzzy.Find(u, names)
		for k, m := range matches {
			if k == 3 {
				break
			}
			out[u] = append(out[u], m.Str)
		}
	}
	return out
}
