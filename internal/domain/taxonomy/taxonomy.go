// Package taxonomy holds the canonical skill vocabulary and resolves free
// text against it.
//
// A Taxonomy is immutable once built: consumers receive it explicitly and may
// share it across goroutines without locking. Resolution is a pure function
// of (text, taxonomy), so identical inputs always produce identical matches.
package taxonomy

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Resolution tier confidences and the default fuzzy threshold.
const (
	exactConfidence       = 1.0
	synonymConfidence     = 0.8
	fuzzyConfidence       = 0.5
	defaultFuzzyThreshold = 0.72
)

// Resolution tier names reported in Match.Via.
const (
	ViaExact   = "exact"
	ViaSynonym = "synonym"
	ViaFuzzy   = "fuzzy"
)

// Skill is one canonical taxonomy entry.
type Skill struct {
	ID       string   `koanf:"id" json:"id"`
	Name     string   `koanf:"name" json:"name"`
	Synonyms []string `koanf:"synonyms" json:"synonyms,omitempty"`
}

// Match is one resolved canonical skill with the confidence of the tier that
// produced it.
type Match struct {
	SkillID    string  `json:"skill_id"`
	Confidence float64 `json:"confidence"`
	Via        string  `json:"via"`
}

// variant is one normalized surface form a skill can be recognized by.
type variant struct {
	text   string
	tokens []string
}

// indexedSkill pairs a skill with its precomputed surface forms.
type indexedSkill struct {
	skill    Skill
	variants []variant
}

// Taxonomy is an immutable skill vocabulary with derived lookup indexes.
type Taxonomy struct {
	index     []indexedSkill
	names     map[string]string   // normalized canonical name or id -> skill id
	synonyms  map[string][]string // normalized synonym -> skill ids, sorted
	threshold float64
	version   string
}

// New builds a Taxonomy from the builtin skill set, modified by options.
func New(opts ...Option) (*Taxonomy, error) {
	s := settings{
		skills:    defaultSkills(),
		threshold: defaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(&s)
	}
	skills := append(s.skills, s.extra...)
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}
	if s.threshold <= 0 || s.threshold > 1 {
		return nil, fmt.Errorf("%w: fuzzy threshold %v outside (0, 1]", ErrInvalidThreshold, s.threshold)
	}

	t := &Taxonomy{
		names:     make(map[string]string, len(skills)*2),
		synonyms:  make(map[string][]string),
		threshold: s.threshold,
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].ID < skills[j].ID })
	seen := make(map[string]bool, len(skills))
	for _, sk := range skills {
		id := strings.ToLower(strings.TrimSpace(sk.ID))
		if id == "" || normalizeText(id) == "" {
			return nil, fmt.Errorf("%w: skill %q has no usable id", ErrInvalidSkill, sk.Name)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSkill, id)
		}
		seen[id] = true
		sk.ID = id

		variants := []variant{newVariant(id)}
		t.names[normalizeText(id)] = id
		if name := normalizeText(sk.Name); name != "" && name != normalizeText(id) {
			t.names[name] = id
			variants = append(variants, newVariant(sk.Name))
		}
		for _, syn := range sk.Synonyms {
			norm := normalizeText(syn)
			if norm == "" {
				continue
			}
			t.synonyms[norm] = append(t.synonyms[norm], id)
			variants = append(variants, newVariant(syn))
		}
		t.index = append(t.index, indexedSkill{skill: sk, variants: variants})
	}
	for syn := range t.synonyms {
		sort.Strings(t.synonyms[syn])
	}
	t.version = fingerprint(skills)
	return t, nil
}

// Default returns the builtin taxonomy. It never fails because the builtin
// set is valid by construction.
func Default() *Taxonomy {
	t, err := New()
	if err != nil {
		panic("taxonomy: builtin skill set invalid: " + err.Error())
	}
	return t
}

func newVariant(text string) variant {
	tokens := Tokenize(text)
	return variant{text: strings.Join(tokens, " "), tokens: tokens}
}

// fingerprint hashes the skill set so result provenance can name the exact
// vocabulary that produced a score.
func fingerprint(skills []Skill) string {
	h := fnv.New64a()
	for _, sk := range skills {
		_, _ = h.Write([]byte(sk.ID))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(sk.Name))
		_, _ = h.Write([]byte{0})
		for _, syn := range sk.Synonyms {
			_, _ = h.Write([]byte(syn))
			_, _ = h.Write([]byte{1})
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Version identifies the vocabulary content; it changes whenever any skill,
// name, or synonym changes.
func (t *Taxonomy) Version() string { return t.version }

// Len returns the number of canonical skills.
func (t *Taxonomy) Len() int { return len(t.index) }

// Has reports whether id is a canonical skill.
func (t *Taxonomy) Has(id string) bool {
	_, ok := t.names[normalizeText(id)]
	return ok
}

// Canonical returns the canonical skill id for a canonical name or id,
// without synonym or fuzzy resolution.
func (t *Taxonomy) Canonical(s string) (string, bool) {
	id, ok := t.names[normalizeText(s)]
	return id, ok
}

// Name returns the display name for a canonical skill id, or the id itself
// when unknown.
func (t *Taxonomy) Name(id string) string {
	for i := range t.index {
		if t.index[i].skill.ID == id {
			return t.index[i].skill.Name
		}
	}
	return id
}

// Skills returns a copy of the canonical skill list, sorted by id.
func (t *Taxonomy) Skills() []Skill {
	out := make([]Skill, len(t.index))
	for i := range t.index {
		out[i] = t.index[i].skill
	}
	return out
}
