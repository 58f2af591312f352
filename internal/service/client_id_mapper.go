// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/MKhiriev/go-life-keeper/models"
)

const maxSlugLength = 20

var (
	slugStrip      = regexp.MustCompile(`[^a-z0-9\s]+`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// aliasCluster maps every token to the category whose name contains any of
// the triggers.
type aliasCluster struct {
	triggers []string
	tokens   []string
}

var aliasClusters = []aliasCluster{
	{
		triggers: []string{"fitness", "gym", "workout", "exercise"},
		tokens:   []string{"fitness", "gym", "workout", "exercise"},
	},
	{
		triggers: []string{"personal", "self", "regulation"},
		tokens:   []string{"personal", "self", "regulation", "self-regulation"},
	},
	{
		triggers: []string{"work", "business", "career"},
		tokens:   []string{"work", "business", "career"},
	},
	{
		triggers: []string{"social", "relationship", "friends", "family"},
		tokens:   []string{"social", "relationship", "relationships", "friends", "family"},
	},
	{
		triggers: []string{"content", "study", "learning", "education"},
		tokens:   []string{"content", "study", "learning", "education"},
	},
}

// Slugify turns a category name into the short key legacy data used as
// category id.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugWhitespace.ReplaceAllString(s, "-")
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	return s
}

type mappingSnapshot struct {
	forward map[string]string
	reverse map[string]string
	names   []namedCategory
}

type namedCategory struct {
	id    string
	lower string
}

// IdentifierMapper translates human-readable or legacy category references
// into remote category ids. Mappings are rebuilt as a whole and swapped in
// atomically, so readers never observe a partial rebuild.
type IdentifierMapper struct {
	snapshot atomic.Pointer[mappingSnapshot]
}

func NewIdentifierMapper() *IdentifierMapper {
	m := &IdentifierMapper{}
	m.snapshot.Store(&mappingSnapshot{
		forward: map[string]string{},
		reverse: map[string]string{},
	})
	return m
}

// BuildMappings replaces all mappings with ones derived from categories.
// Earlier categories win alias collisions; exact slug and name keys always
// win over alias keys.
func (m *IdentifierMapper) BuildMappings(categories []models.Category) {
	next := &mappingSnapshot{
		forward: make(map[string]string, len(categories)*4),
		reverse: make(map[string]string, len(categories)),
		names:   make([]namedCategory, 0, len(categories)),
	}

	for _, c := range categories {
		lower := strings.ToLower(strings.TrimSpace(c.Name))
		for _, cluster := range aliasClusters {
			if !containsAny(lower, cluster.triggers) {
				continue
			}
			for _, token := range cluster.tokens {
				if _, taken := next.forward[token]; !taken {
					next.forward[token] = c.ID
				}
			}
		}
	}

	exact := make(map[string]struct{}, len(categories)*2)
	for _, c := range categories {
		slug := Slugify(c.Name)
		lower := strings.ToLower(strings.TrimSpace(c.Name))

		for _, key := range []string{slug, lower} {
			if key == "" {
				continue
			}
			if _, seen := exact[key]; seen {
				continue
			}
			exact[key] = struct{}{}
			next.forward[key] = c.ID
		}

		next.reverse[c.ID] = slug
		next.names = append(next.names, namedCategory{id: c.ID, lower: lower})
	}

	m.snapshot.Store(next)
}

// Resolve returns the category id ref refers to: an exact key, then a
// case-insensitive key, then a known remote id, then the first category
// whose name contains ref. Unknown references are returned unchanged.
func (m *IdentifierMapper) Resolve(ref string) string {
	if ref == "" {
		return ref
	}
	snap := m.snapshot.Load()

	if id, ok := snap.forward[ref]; ok {
		return id
	}
	lower := strings.ToLower(strings.TrimSpace(ref))
	if id, ok := snap.forward[lower]; ok {
		return id
	}
	if id, ok := snap.forward[Slugify(ref)]; ok {
		return id
	}
	if _, ok := snap.reverse[ref]; ok {
		return ref
	}
	if lower != "" {
		for _, n := range snap.names {
			if strings.Contains(n.lower, lower) {
				return n.id
			}
		}
	}
	return ref
}

// Slug returns the slug of the category with remoteID.
func (m *IdentifierMapper) Slug(remoteID string) (string, bool) {
	slug, ok := m.snapshot.Load().reverse[remoteID]
	return slug, ok
}

// Known reports whether id is the id of a mapped category.
func (m *IdentifierMapper) Known(id string) bool {
	_, ok := m.snapshot.Load().reverse[id]
	return ok
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
