// Package demo generates deterministic candidate pools, projects, and their
// profile documents for seeding and exercising the matching service. Every
// profile claim carries a genuine span into its generated document, so
// evidence extraction works on demo data exactly as it does on real parses.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// Default generation sizes; config and flags override them.
const (
	defaultPoolSize     = 24
	defaultProjectCount = 6
	defaultSeed         = 42
)

// startDateHorizonDays bounds how far out a generated delayed start lands.
const startDateHorizonDays = 120

// Generator produces a reproducible dataset. The same seed always yields the
// same pool; the injected clock only anchors generated start dates.
type Generator struct {
	seed         int64
	poolSize     int
	projectCount int
	now          func() time.Time
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source so generated pools are reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithPoolSize sets how many candidates to generate.
func WithPoolSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.poolSize = size
		}
	}
}

// WithProjectCount sets how many projects to generate.
func WithProjectCount(count int) Option {
	return func(g *Generator) {
		if count > 0 {
			g.projectCount = count
		}
	}
}

// WithNow overrides the time source that anchors generated start dates.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a Generator with default sizing.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:         defaultSeed,
		poolSize:     defaultPoolSize,
		projectCount: defaultProjectCount,
		now:          time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Dataset is one generated pool: projects to match against, candidates, and
// the documents their profile claims point into.
type Dataset struct {
	Projects   []model.ProjectRequirement
	Candidates []model.CandidateProfile
	Documents  []model.SourceDocument
}

// Document returns the generated document with the given id.
func (d Dataset) Document(id string) (model.SourceDocument, bool) {
	for _, doc := range d.Documents {
		if doc.ID == id {
			return doc, true
		}
	}
	return model.SourceDocument{}, false
}

// Sink receives generated entities. The application service and the memory
// store both satisfy it.
type Sink interface {
	PutProject(ctx context.Context, p model.ProjectRequirement) (model.ProjectRequirement, error)
	PutCandidate(ctx context.Context, c model.CandidateProfile) (model.CandidateProfile, error)
	PutDocument(ctx context.Context, doc model.SourceDocument) (model.SourceDocument, error)
}

// Seed stores the whole dataset through the sink, documents before the
// candidates that reference them.
func (d Dataset) Seed(ctx context.Context, sink Sink) error {
	for _, p := range d.Projects {
		if _, err := sink.PutProject(ctx, p); err != nil {
			return fmt.Errorf("seed project %s: %w", p.ID, err)
		}
	}
	for _, doc := range d.Documents {
		if _, err := sink.PutDocument(ctx, doc); err != nil {
			return fmt.Errorf("seed document %s: %w", doc.ID, err)
		}
	}
	for _, c := range d.Candidates {
		if _, err := sink.PutCandidate(ctx, c); err != nil {
			return fmt.Errorf("seed candidate %s: %w", c.ID, err)
		}
	}
	return nil
}

// Generate builds the dataset. Draws from the seeded source happen in a fixed
// order, so output is stable for a given seed and clock.
func (g *Generator) Generate() Dataset {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // reproducibility is the point
	base := g.now()

	ds := Dataset{
		Projects:   make([]model.ProjectRequirement, 0, g.projectCount),
		Candidates: make([]model.CandidateProfile, 0, g.poolSize),
		Documents:  make([]model.SourceDocument, 0, g.poolSize),
	}

	for i := 0; i < g.projectCount; i++ {
		ds.Projects = append(ds.Projects, g.project(i))
	}
	for i := 0; i < g.poolSize; i++ {
		candidate, doc := g.candidate(rng, i, base)
		ds.Candidates = append(ds.Candidates, candidate)
		ds.Documents = append(ds.Documents, doc)
	}
	return ds
}

// project instantiates one project from the template cycle. Repeated rounds
// get a numbered title so listings stay readable.
func (g *Generator) project(index int) model.ProjectRequirement {
	tpl := projectTemplates[index%len(projectTemplates)]
	title := tpl.title
	if round := index / len(projectTemplates); round > 0 {
		title = fmt.Sprintf("%s #%d", tpl.title, round+1)
	}
	return model.ProjectRequirement{
		ID:                g.entityID("project", index),
		Title:             title,
		Description:       tpl.description,
		Type:              tpl.projectType,
		Duration:          tpl.duration,
		WorkMode:          tpl.workMode,
		RequiredSkills:    append([]string(nil), tpl.requiredSkills...),
		PreferredSkills:   append([]string(nil), tpl.preferredSkills...),
		PreferredPrograms: append([]string(nil), tpl.preferredPrograms...),
		MinYear:           tpl.minYear,
		MaxYear:           tpl.maxYear,
	}
}

// candidate builds one profile and the document its claims point into.
func (g *Generator) candidate(rng *rand.Rand, index int, base time.Time) (model.CandidateProfile, model.SourceDocument) {
	arch := archetypes[index%len(archetypes)]
	name := firstNames[index%len(firstNames)] + " " + lastNames[rng.Intn(len(lastNames))]
	year := model.AcademicYear(1 + rng.Intn(5))

	doc := &docBuilder{id: g.entityID("document", index)}
	c := model.CandidateProfile{
		ID:           g.entityID("candidate", index),
		Name:         name,
		AcademicYear: year,
		Program:      arch.program,
		DocumentID:   doc.id,
	}

	// Header: name and academic standing.
	doc.raw(name + " — ")
	c.AcademicSource = doc.span(year.String() + " in " + arch.program)
	doc.raw(".\n")

	// Skills with a stated level most of the time.
	doc.raw("Skills: ")
	skillCount := 2 + rng.Intn(len(arch.skills)-1)
	for j := 0; j < skillCount; j++ {
		if j > 0 {
			doc.raw(", ")
		}
		skill := arch.skills[j]
		mention := model.SkillMention{
			RawText:     skill,
			Proficiency: rollProficiency(rng),
			Source:      doc.span(skill),
		}
		if mention.Proficiency != "" {
			doc.raw(" (" + string(mention.Proficiency) + ")")
		}
		c.Skills = append(c.Skills, mention)
	}
	doc.raw(".\n")

	// Experience sentences shared with same-domain project vocabulary.
	doc.raw("Experience: ")
	experienceCount := 1
	if len(arch.experience) > 1 && rng.Intn(2) == 0 {
		experienceCount = 2
	}
	for j := 0; j < experienceCount; j++ {
		if j > 0 {
			doc.raw(" ")
		}
		sentence := arch.experience[j]
		c.Experience = append(c.Experience, model.ExperienceEntry{
			Title:       experienceTitle(sentence),
			Description: sentence,
			Source:      doc.span(sentence),
		})
		doc.raw(".")
	}
	doc.raw("\n")

	// Education record.
	doc.raw("Education: ")
	institution := institutions[rng.Intn(len(institutions))]
	c.Education = append(c.Education, model.EducationEntry{
		Institution: institution,
		Program:     arch.program,
		Source:      doc.span("B.S. in " + arch.program + " at " + institution),
	})
	doc.raw(".\n")

	// Roughly half the profiles carry their archetype's achievement.
	if arch.achievement != "" && rng.Intn(2) == 0 {
		doc.raw("Achievements: ")
		c.Achievements = append(c.Achievements, model.AchievementEntry{
			Title:  arch.achievement,
			Source: doc.span(arch.achievement),
		})
		doc.raw(".\n")
	}

	// Availability phrase assembled first, then recorded as one span.
	c.Availability = g.availability(rng, base)
	doc.raw("Availability: ")
	c.Availability.Source = doc.span(availabilityPhrase(c.Availability))
	doc.raw(".\n")

	return c, model.SourceDocument{
		ID:          doc.id,
		CandidateID: c.ID,
		Text:        doc.text(),
	}
}

// availability rolls status, remote preference, slots, and an occasional
// delayed start within the generation horizon.
func (g *Generator) availability(rng *rand.Rand, base time.Time) model.Availability {
	a := model.Availability{}

	switch roll := rng.Intn(10); {
	case roll < 7:
		a.Status = model.AvailabilityYes
	case roll < 9:
		a.Status = model.AvailabilityLimited
	default:
		a.Status = model.AvailabilityNo
	}

	prefs := []model.RemoteMode{
		model.RemoteModeRemote,
		model.RemoteModeFlexible,
		model.RemoteModeHybrid,
		model.RemoteModeOnsite,
	}
	a.RemotePreference = prefs[rng.Intn(len(prefs))]

	slotSets := [][]model.AvailabilitySlot{
		nil,
		{model.SlotSummer},
		{model.SlotWeekends, model.SlotEvenings},
		{model.SlotPartTime},
		{model.SlotCoop, model.SlotSummer},
	}
	a.Slots = append([]model.AvailabilitySlot(nil), slotSets[rng.Intn(len(slotSets))]...)

	if a.Status != model.AvailabilityNo && rng.Intn(4) == 0 {
		days := 1 + rng.Intn(startDateHorizonDays)
		a.AvailableFrom = base.AddDate(0, 0, days).UTC().Truncate(24 * time.Hour)
	}
	return a
}

// rollProficiency returns a stated level two thirds of the time; the rest of
// the claims leave the level implicit.
func rollProficiency(rng *rand.Rand) model.Proficiency {
	switch rng.Intn(6) {
	case 0, 1:
		return model.ProficiencyAdvanced
	case 2:
		return model.ProficiencyBeginner
	case 3:
		return model.ProficiencyExpert
	default:
		return ""
	}
}

// availabilityPhrase renders an availability the way a parsed profile
// document would state it.
func availabilityPhrase(a model.Availability) string {
	var b strings.Builder
	switch {
	case a.Status == model.AvailabilityNo:
		b.WriteString("not available this term")
	case !a.AvailableFrom.IsZero():
		b.WriteString("available from " + a.AvailableFrom.Format("January 2, 2006"))
	case a.Status == model.AvailabilityLimited:
		b.WriteString("limited availability")
	default:
		b.WriteString("available immediately")
	}

	switch a.RemotePreference {
	case model.RemoteModeRemote:
		b.WriteString("; prefers remote work")
	case model.RemoteModeOnsite:
		b.WriteString("; prefers onsite work")
	case model.RemoteModeHybrid:
		b.WriteString("; prefers hybrid work")
	case model.RemoteModeFlexible:
		b.WriteString("; flexible on work mode")
	}

	if len(a.Slots) > 0 {
		parts := make([]string, len(a.Slots))
		for i, slot := range a.Slots {
			parts[i] = string(slot)
		}
		b.WriteString("; slots: " + strings.Join(parts, ", "))
	}
	return b.String()
}

// experienceTitle shortens a sentence to a listing title.
func experienceTitle(sentence string) string {
	words := strings.Fields(sentence)
	if len(words) <= 4 {
		return sentence
	}
	return strings.Join(words[:4], " ")
}

// entityID derives a stable UUID from the seed and index, so reruns with the
// same seed address the same entities.
func (g *Generator) entityID(kind string, index int) string {
	name := fmt.Sprintf("gradmatch:%s:%d:%d", kind, g.seed, index)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// docBuilder accumulates document text and hands out spans for the exact
// ranges it wrote, so claims never drift from their source.
type docBuilder struct {
	id string
	b  strings.Builder
}

func (d *docBuilder) raw(s string) {
	d.b.WriteString(s)
}

func (d *docBuilder) span(s string) model.Span {
	start := d.b.Len()
	d.b.WriteString(s)
	return model.Span{DocumentID: d.id, Start: start, End: d.b.Len()}
}

func (d *docBuilder) text() string {
	return d.b.String()
}
