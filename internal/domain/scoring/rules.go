package scoring

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/internal/domain/taxonomy"
)

// Rule strategy configuration constants.
const (
	// Proficiency multipliers applied to matched skill confidence.
	beginnerMultiplier     = 0.5
	intermediateMultiplier = 0.75
	advancedMultiplier     = 1.0
	expertMultiplier       = 1.0

	// Academic scores by distance from the accepted year band.
	academicInBand     = 100.0
	academicOneOff     = 60.0
	academicFurtherOff = 20.0

	// defaultAvailabilityHorizonDays prorates delayed start dates; a start
	// this far out or further scores zero.
	defaultAvailabilityHorizonDays = 90

	// limitedAvailabilityFactor halves the availability score for
	// limited-status candidates.
	limitedAvailabilityFactor = 0.5

	// defaultPreferredBonus is the maximum points added to the skills score
	// for full preferred-skill coverage.
	defaultPreferredBonus = 20.0

	// experienceSoftCap is the number of relevant engagements that earns the
	// full experience score.
	experienceSoftCap = 3.0

	// achievementExperienceWeight counts a relevant achievement as half an
	// engagement.
	achievementExperienceWeight = 0.5

	// relevanceMinOverlap is the distinct-token overlap an experience entry
	// needs with the project text to count as relevant.
	relevanceMinOverlap = 2

	// preferredProgramBoost raises education evidence confidence when the
	// candidate's program is on the project's preferred list. It does not
	// change the academic score.
	preferredProgramBoost = 0.2
)

// RuleOption applies a configuration option to the RuleStrategy.
type RuleOption func(*RuleStrategy)

// WithTaxonomy sets the skill vocabulary used for resolution.
func WithTaxonomy(t *taxonomy.Taxonomy) RuleOption {
	return func(s *RuleStrategy) {
		if t != nil {
			s.tax = t
		}
	}
}

// WithAvailabilityHorizon sets how many days out a delayed start prorates
// over before scoring zero.
func WithAvailabilityHorizon(days int) RuleOption {
	return func(s *RuleStrategy) {
		if days > 0 {
			s.horizonDays = float64(days)
		}
	}
}

// WithPreferredBonus sets the maximum skills-score bonus for preferred
// skill coverage.
func WithPreferredBonus(points float64) RuleOption {
	return func(s *RuleStrategy) {
		if points >= 0 {
			s.preferredBonus = points
		}
	}
}

// WithNow overrides the time source used for start-date proration.
func WithNow(now func() time.Time) RuleOption {
	return func(s *RuleStrategy) {
		if now != nil {
			s.now = now
		}
	}
}

// RuleStrategy assesses candidates with deterministic rules over the skill
// taxonomy. It is the default strategy.
type RuleStrategy struct {
	tax            *taxonomy.Taxonomy
	horizonDays    float64
	preferredBonus float64
	now            func() time.Time
}

// NewRuleStrategy creates a rule strategy with configuration options.
func NewRuleStrategy(opts ...RuleOption) *RuleStrategy {
	s := &RuleStrategy{
		tax:            taxonomy.Default(),
		horizonDays:    defaultAvailabilityHorizonDays,
		preferredBonus: defaultPreferredBonus,
		now:            time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the strategy in match results.
func (s *RuleStrategy) Name() string { return "rules" }

// Assess scores the four dimensions and collects the contributions behind
// each of them.
func (s *RuleStrategy) Assess(ctx context.Context, project model.ProjectRequirement, candidate model.CandidateProfile) (Breakdown, error) {
	select {
	case <-ctx.Done():
		return Breakdown{}, ctx.Err()
	default:
	}

	skills := s.scoreSkills(project, candidate)
	availability, availContribs := s.scoreAvailability(project, candidate)
	academic, acadContribs := s.scoreAcademic(project, candidate)
	experience, expContribs := s.scoreExperience(project, candidate)

	contribs := make([]model.Contribution, 0, len(skills.contribs)+len(availContribs)+len(acadContribs)+len(expContribs))
	contribs = append(contribs, skills.contribs...)
	contribs = append(contribs, availContribs...)
	contribs = append(contribs, acadContribs...)
	contribs = append(contribs, expContribs...)

	return Breakdown{
		Dimensions: model.DimensionScores{
			Skills:       round2(skills.score),
			Availability: round2(availability),
			Academic:     round2(academic),
			Experience:   round2(experience),
		},
		MatchedSkills:     skills.matched,
		MissingSkills:     skills.missing,
		UnmatchedMentions: skills.unmatched,
		Contributions:     contribs,
	}, nil
}

// resolvedMention is a candidate skill claim resolved against the taxonomy.
type resolvedMention struct {
	skillID    string
	confidence float64
	multiplier float64
	raw        string
	source     model.Span
}

// strength is the mention's contribution ceiling for a perfectly resolved
// requirement.
func (m resolvedMention) strength() float64 {
	return m.confidence * m.multiplier
}

type skillsAssessment struct {
	score     float64
	matched   int
	missing   []string
	unmatched []string
	contribs  []model.Contribution
}

// scoreSkills averages per-requirement match strength over all required
// skills. A requirement's strength is requirement resolution confidence
// times the best mention's resolution confidence times its proficiency
// multiplier; unmet requirements contribute zero and are echoed verbatim in
// missing. Preferred skills add a bonus on top, capped at 100.
func (s *RuleStrategy) scoreSkills(project model.ProjectRequirement, candidate model.CandidateProfile) skillsAssessment {
	out := skillsAssessment{missing: []string{}}

	mentions, unmatched := s.resolveMentions(candidate)
	out.unmatched = unmatched

	best := make(map[string]resolvedMention, len(mentions))
	for _, m := range mentions {
		cur, ok := best[m.skillID]
		if !ok || m.strength() > cur.strength() {
			best[m.skillID] = m
		}
	}

	var total float64
	for _, req := range project.RequiredSkills {
		strength, mention, ok := s.bestFor(req, best)
		if !ok {
			out.missing = append(out.missing, req)
			continue
		}
		out.matched++
		total += strength
		out.contribs = append(out.contribs, model.Contribution{
			Kind:      model.EvidenceSkillMention,
			Dimension: model.DimensionSkills,
			Label:     mention.raw,
			Weight:    strength,
			Source:    mention.source,
		})
	}

	if len(project.RequiredSkills) == 0 {
		out.score = maxScoreValue
	} else {
		out.score = total / float64(len(project.RequiredSkills)) * maxScoreValue
	}

	if len(project.PreferredSkills) > 0 {
		preferred := 0
		for _, pref := range project.PreferredSkills {
			strength, mention, ok := s.bestFor(pref, best)
			if !ok {
				continue
			}
			preferred++
			out.contribs = append(out.contribs, model.Contribution{
				Kind:      model.EvidenceSkillMention,
				Dimension: model.DimensionSkills,
				Label:     mention.raw,
				Weight:    strength,
				Source:    mention.source,
			})
		}
		bonus := s.preferredBonus * float64(preferred) / float64(len(project.PreferredSkills))
		out.score = math.Min(maxScoreValue, out.score+bonus)
	}

	return out
}

// bestFor resolves one requirement text and returns the strongest candidate
// mention covering any of its canonical interpretations.
func (s *RuleStrategy) bestFor(requirement string, best map[string]resolvedMention) (float64, resolvedMention, bool) {
	var (
		top     float64
		mention resolvedMention
		found   bool
	)
	for _, match := range s.tax.Normalize(requirement) {
		m, ok := best[match.SkillID]
		if !ok {
			continue
		}
		if v := match.Confidence * m.strength(); !found || v > top {
			top, mention, found = v, m, true
		}
	}
	return top, mention, found
}

// resolveMentions resolves every skill claim on the profile. Claims that
// resolve nowhere are echoed verbatim, deduplicated, in input order.
func (s *RuleStrategy) resolveMentions(candidate model.CandidateProfile) ([]resolvedMention, []string) {
	resolved := make([]resolvedMention, 0, len(candidate.Skills))
	var unmatched []string
	seen := make(map[string]bool)

	for _, claim := range candidate.Skills {
		m := resolvedMention{raw: claim.RawText, source: claim.Source}
		prof := claim.Proficiency

		if id, ok := s.tax.Canonical(claim.SkillID); claim.SkillID != "" && ok {
			m.skillID = id
			m.confidence = 1.0
		} else {
			parsed := s.tax.ParseMention(claim.RawText)
			if parsed.SkillID == "" {
				if !seen[claim.RawText] {
					seen[claim.RawText] = true
					unmatched = append(unmatched, claim.RawText)
				}
				continue
			}
			m.skillID = parsed.SkillID
			m.confidence = parsed.Confidence
			if prof == "" {
				prof = parsed.Proficiency
			}
		}

		m.multiplier = multiplierFor(prof)
		resolved = append(resolved, m)
	}
	return resolved, unmatched
}

// multiplierFor returns the proficiency multiplier; unspecified levels count
// as intermediate.
func multiplierFor(p model.Proficiency) float64 {
	switch p {
	case model.ProficiencyBeginner:
		return beginnerMultiplier
	case model.ProficiencyAdvanced:
		return advancedMultiplier
	case model.ProficiencyExpert:
		return expertMultiplier
	default:
		return intermediateMultiplier
	}
}

// scoreAvailability scores start-readiness. An explicit "no", a pure
// remote/onsite conflict, or no slot that can carry the project's duration
// zeroes the dimension; a future start date prorates linearly over the
// horizon; limited status halves whatever remains.
func (s *RuleStrategy) scoreAvailability(project model.ProjectRequirement, candidate model.CandidateProfile) (float64, []model.Contribution) {
	a := candidate.Availability
	if a.Status == model.AvailabilityNo {
		return 0, nil
	}
	if !workModesCompatible(project.WorkMode, a.RemotePreference) {
		return 0, nil
	}
	if !slotsCompatible(project.Duration, a.Slots) {
		return 0, nil
	}

	score := float64(maxScoreValue)
	if !a.AvailableFrom.IsZero() {
		if days := a.AvailableFrom.Sub(s.now()).Hours() / 24; days > 0 {
			if days >= s.horizonDays {
				return 0, nil
			}
			score *= 1 - days/s.horizonDays
		}
	}
	if a.Status == model.AvailabilityLimited {
		score *= limitedAvailabilityFactor
	}
	if score <= 0 {
		return 0, nil
	}

	contribs := []model.Contribution{{
		Kind:      model.EvidenceAvailability,
		Dimension: model.DimensionAvailability,
		Label:     string(a.Status),
		Weight:    score / maxScoreValue,
		Source:    a.Source,
	}}
	return score, contribs
}

// workModesCompatible reports whether a project work mode and a candidate
// preference can coexist. Only a pure remote/onsite conflict is fatal;
// hybrid and flexible overlap everything, and unknowns are permissive.
func workModesCompatible(project, preference model.RemoteMode) bool {
	if project == "" || preference == "" {
		return true
	}
	if project == model.RemoteModeRemote && preference == model.RemoteModeOnsite {
		return false
	}
	if project == model.RemoteModeOnsite && preference == model.RemoteModeRemote {
		return false
	}
	return true
}

// slotsCompatible reports whether any of the candidate's committed slots can
// carry a project of the given duration. No listed slots is permissive.
// A summer-only commitment cannot carry a project longer than a season;
// every recurring slot carries any duration.
func slotsCompatible(duration model.Duration, slots []model.AvailabilitySlot) bool {
	if len(slots) == 0 || duration == "" {
		return true
	}
	long := duration == model.DurationThreeSixMonths || duration == model.DurationSixMonthsPlus
	for _, slot := range slots {
		if slot != model.SlotSummer {
			return true
		}
		if !long {
			return true
		}
	}
	return false
}

// scoreAcademic scores the candidate's academic standing against the
// project's year band. Preferred-program matches raise the evidence
// confidence but never the score.
func (s *RuleStrategy) scoreAcademic(project model.ProjectRequirement, candidate model.CandidateProfile) (float64, []model.Contribution) {
	var score float64
	switch project.YearDistance(candidate.AcademicYear) {
	case 0:
		score = academicInBand
	case 1:
		score = academicOneOff
	default:
		score = academicFurtherOff
	}

	label := candidate.AcademicYear.String()
	source := candidate.AcademicSource
	preferred := programPreferred(project.PreferredPrograms, candidate.Program)

	if len(candidate.Education) > 0 {
		entry := candidate.Education[0]
		for _, e := range candidate.Education {
			if programPreferred(project.PreferredPrograms, e.Program) {
				entry, preferred = e, true
				break
			}
		}
		if entry.Program != "" {
			label = entry.Program
		}
		if !entry.Source.IsZero() {
			source = entry.Source
		}
	}

	if source.IsZero() {
		return score, nil
	}

	confidence := score / maxScoreValue
	if preferred {
		confidence = math.Min(1, confidence+preferredProgramBoost)
	}
	contribs := []model.Contribution{{
		Kind:      model.EvidenceEducation,
		Dimension: model.DimensionAcademic,
		Label:     label,
		Weight:    confidence,
		Source:    source,
	}}
	return score, contribs
}

// programPreferred reports whether a candidate program matches any preferred
// program, by case-insensitive containment in either direction.
func programPreferred(preferred []string, program string) bool {
	prog := strings.ToLower(strings.TrimSpace(program))
	if prog == "" {
		return false
	}
	for _, p := range preferred {
		want := strings.ToLower(strings.TrimSpace(p))
		if want == "" {
			continue
		}
		if strings.Contains(prog, want) || strings.Contains(want, prog) {
			return true
		}
	}
	return false
}

// scoreExperience counts project-relevant engagements against a soft cap of
// three, with relevant achievements weighing half each. Relevance means the
// entry text shares at least relevanceMinOverlap distinct tokens with the
// project's text and required skills.
func (s *RuleStrategy) scoreExperience(project model.ProjectRequirement, candidate model.CandidateProfile) (float64, []model.Contribution) {
	keywords := s.projectKeywords(project)
	if len(keywords) == 0 {
		return 0, nil
	}

	var (
		relevant float64
		contribs []model.Contribution
	)
	for _, e := range candidate.Experience {
		if tokenOverlap(keywords, e.Title+" "+e.Description) < relevanceMinOverlap {
			continue
		}
		relevant++
		contribs = append(contribs, model.Contribution{
			Kind:      model.EvidenceProjectExperience,
			Dimension: model.DimensionExperience,
			Label:     e.Title,
			Weight:    1 / experienceSoftCap,
			Source:    e.Source,
		})
	}
	for _, a := range candidate.Achievements {
		if tokenOverlap(keywords, a.Title+" "+a.Description) < relevanceMinOverlap {
			continue
		}
		relevant += achievementExperienceWeight
		contribs = append(contribs, model.Contribution{
			Kind:      model.EvidenceAchievement,
			Dimension: model.DimensionExperience,
			Label:     a.Title,
			Weight:    achievementExperienceWeight / experienceSoftCap,
			Source:    a.Source,
		})
	}

	score := math.Min(relevant, experienceSoftCap) / experienceSoftCap * maxScoreValue
	return score, contribs
}

// projectKeywords collects the tokens that define what the project is about:
// its title and description, its type, and every surface form of its
// required skills.
func (s *RuleStrategy) projectKeywords(project model.ProjectRequirement) map[string]bool {
	keywords := make(map[string]bool)
	add := func(text string) {
		for _, tok := range taxonomy.Tokenize(text) {
			keywords[tok] = true
		}
	}
	add(project.Title)
	add(project.Description)
	add(string(project.Type))
	for _, req := range project.RequiredSkills {
		add(req)
		for _, match := range s.tax.Normalize(req) {
			add(match.SkillID)
			add(s.tax.Name(match.SkillID))
		}
	}
	return keywords
}

// tokenOverlap counts distinct text tokens present in the keyword set.
func tokenOverlap(keywords map[string]bool, text string) int {
	seen := make(map[string]bool)
	for _, tok := range taxonomy.Tokenize(text) {
		if keywords[tok] && !seen[tok] {
			seen[tok] = true
		}
	}
	return len(seen)
}

// round2 rounds to two decimal places for stable dimension scores.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
