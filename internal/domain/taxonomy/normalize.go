package taxonomy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// Mention is the parse result of one free-text skill claim. SkillID is empty
// when no tier resolved the residual text.
type Mention struct {
	SkillID     string
	Confidence  float64
	Proficiency model.Proficiency
	Residual    string
}

// stopwords are filler tokens dropped during tokenization.
var stopwords = map[string]bool{
	"and": true, "or": true, "the": true, "a": true, "an": true,
	"with": true, "of": true, "in": true, "for": true, "to": true,
	"on": true, "at": true, "using": true, "via": true, "&": true,
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', ';', '/', '|', '\\', '_', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// Tokenize lowercases text and splits it into skill tokens. Punctuation that
// carries meaning in skill names survives: "c++", "c#", "node.js", and ".net"
// stay intact while ordinary trailing punctuation is stripped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), isSeparator)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, ".,:;!?'\"")
		f = strings.TrimLeft(f, ",:;!?'\"")
		if f == "" || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func normalizeText(s string) string {
	return strings.Join(Tokenize(s), " ")
}

// Normalize resolves free text to canonical skills. Resolution tiers, in
// order: exact canonical name or id (confidence 1.0), curated synonym (0.8),
// fuzzy token-overlap/edit-distance above the configured threshold (0.5).
// An empty result means the text is unmatched; that is not an error.
// Results are deterministic: confidence descending, then skill id ascending.
func (t *Taxonomy) Normalize(text string) []Match {
	return t.resolve(Tokenize(text))
}

func (t *Taxonomy) resolve(tokens []string) []Match {
	if len(tokens) == 0 {
		return nil
	}
	norm := strings.Join(tokens, " ")

	if id, ok := t.names[norm]; ok {
		return []Match{{SkillID: id, Confidence: exactConfidence, Via: ViaExact}}
	}
	if ids, ok := t.synonyms[norm]; ok {
		out := make([]Match, 0, len(ids))
		for _, id := range ids {
			out = append(out, Match{SkillID: id, Confidence: synonymConfidence, Via: ViaSynonym})
		}
		return out
	}
	return t.fuzzy(norm, tokens)
}

// fuzzy scores every skill's surface forms against the input and keeps those
// above the threshold.
func (t *Taxonomy) fuzzy(norm string, tokens []string) []Match {
	type scored struct {
		id  string
		sim float64
	}
	var hits []scored
	for i := range t.index {
		best := 0.0
		for _, v := range t.index[i].variants {
			if sim := similarity(norm, tokens, v); sim > best {
				best = sim
			}
		}
		if best >= t.threshold {
			hits = append(hits, scored{id: t.index[i].skill.ID, sim: best})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].sim != hits[j].sim {
			return hits[i].sim > hits[j].sim
		}
		return hits[i].id < hits[j].id
	})
	out := make([]Match, len(hits))
	for i, h := range hits {
		out[i] = Match{SkillID: h.id, Confidence: fuzzyConfidence, Via: ViaFuzzy}
	}
	return out
}

// similarity blends token containment with edit-distance similarity, taking
// whichever signal is stronger. Containment lets "python and django" reach
// the python entry; edit distance catches typos like "postgress".
func similarity(norm string, tokens []string, v variant) float64 {
	c := containment(tokens, v.tokens)
	e := editSimilarity(norm, v.text)
	if c > e {
		return c
	}
	return e
}

// containment is |a ∩ b| over the smaller set size.
func containment(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, tok := range a {
		set[tok] = true
	}
	common := 0
	for _, tok := range b {
		if set[tok] {
			common++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(common) / float64(smaller)
}

func editSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longer := len([]rune(a))
	if n := len([]rune(b)); n > longer {
		longer = n
	}
	if longer == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longer)
}

// ParseMention resolves one free-text skill claim. Proficiency qualifiers
// embedded in the text ("Advanced Python") are extracted first so the
// residual resolves at the exact tier rather than falling through to fuzzy.
func (t *Taxonomy) ParseMention(raw string) Mention {
	tokens := Tokenize(raw)
	rest := make([]string, 0, len(tokens))
	var prof model.Proficiency
	for _, tok := range tokens {
		if p, ok := model.ParseProficiency(tok); ok && prof == "" {
			prof = p
			continue
		}
		rest = append(rest, tok)
	}

	m := Mention{Proficiency: prof, Residual: strings.Join(rest, " ")}
	if matches := t.resolve(rest); len(matches) > 0 {
		m.SkillID = matches[0].SkillID
		m.Confidence = matches[0].Confidence
	}
	return m
}
