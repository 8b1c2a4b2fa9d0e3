// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Proficiency is a candidate's self-assessed level for a skill.
type Proficiency string

// Proficiency levels, ordered weakest to strongest.
const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// ParseProficiency maps free text to a Proficiency level. Common variants
// ("basic", "novice", "proficient") are folded into the nearest level.
func ParseProficiency(s string) (Proficiency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "basic", "novice":
		return ProficiencyBeginner, true
	case "intermediate":
		return ProficiencyIntermediate, true
	case "advanced", "proficient":
		return ProficiencyAdvanced, true
	case "expert":
		return ProficiencyExpert, true
	}
	return "", false
}

// AcademicYear is the ordinal academic standing of a candidate.
// Zero means unknown/unspecified.
type AcademicYear int

// Academic years in ascending order.
const (
	YearUnknown   AcademicYear = 0
	YearFreshman  AcademicYear = 1
	YearSophomore AcademicYear = 2
	YearJunior    AcademicYear = 3
	YearSenior    AcademicYear = 4
	YearGraduate  AcademicYear = 5
)

// ParseAcademicYear maps free text to an AcademicYear.
func ParseAcademicYear(s string) (AcademicYear, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freshman", "first year":
		return YearFreshman, true
	case "sophomore", "second year":
		return YearSophomore, true
	case "junior", "third year":
		return YearJunior, true
	case "senior", "fourth year":
		return YearSenior, true
	case "graduate", "grad", "masters", "phd":
		return YearGraduate, true
	}
	return YearUnknown, false
}

// String returns the lowercase name of the year.
func (y AcademicYear) String() string {
	switch y {
	case YearFreshman:
		return "freshman"
	case YearSophomore:
		return "sophomore"
	case YearJunior:
		return "junior"
	case YearSenior:
		return "senior"
	case YearGraduate:
		return "graduate"
	default:
		return "unknown"
	}
}

// AvailabilityStatus reflects whether a candidate can start work.
type AvailabilityStatus string

// Availability statuses.
const (
	AvailabilityYes     AvailabilityStatus = "yes"
	AvailabilityLimited AvailabilityStatus = "limited"
	AvailabilityNo      AvailabilityStatus = "no"
)

// AvailabilitySlot is a recurring time window a candidate can commit to.
type AvailabilitySlot string

// Availability slots.
const (
	SlotWeekends AvailabilitySlot = "weekends"
	SlotEvenings AvailabilitySlot = "evenings"
	SlotSummer   AvailabilitySlot = "summer"
	SlotPartTime AvailabilitySlot = "parttime"
	SlotCoop     AvailabilitySlot = "coop"
)

// RemoteMode describes where work happens. Projects use remote/onsite/hybrid;
// candidate preferences may additionally be flexible.
type RemoteMode string

// Remote modes.
const (
	RemoteModeRemote   RemoteMode = "remote"
	RemoteModeOnsite   RemoteMode = "onsite"
	RemoteModeHybrid   RemoteMode = "hybrid"
	RemoteModeFlexible RemoteMode = "flexible"
)

// SkillMention is one skill claim from a candidate profile. RawText is the
// text as parsed from the source document; SkillID is empty until resolved
// against the taxonomy, or pre-filled when upstream already resolved it.
type SkillMention struct {
	RawText     string      `json:"raw_text"`
	SkillID     string      `json:"skill_id,omitempty"`
	Proficiency Proficiency `json:"proficiency,omitempty"`
	Source      Span        `json:"source"`
}

// ExperienceEntry is one employment or project engagement on a profile.
type ExperienceEntry struct {
	Title        string `json:"title"`
	Organization string `json:"organization,omitempty"`
	Description  string `json:"description"`
	Source       Span   `json:"source"`
}

// EducationEntry is one education record on a profile.
type EducationEntry struct {
	Institution string `json:"institution"`
	Program     string `json:"program"`
	Source      Span   `json:"source"`
}

// AchievementEntry is an award or notable accomplishment on a profile.
type AchievementEntry struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      Span   `json:"source"`
}

// Availability captures when and how a candidate can work.
type Availability struct {
	Status           AvailabilityStatus `json:"status"`
	Slots            []AvailabilitySlot `json:"slots,omitempty"`
	RemotePreference RemoteMode         `json:"remote_preference"`
	AvailableFrom    time.Time          `json:"available_from,omitzero"`
	Notes            string             `json:"notes,omitempty"`
	Source           Span               `json:"source"`
}

// CandidateProfile is the scoring input for one candidate. Version increases
// monotonically on every store write and feeds the match cache key.
type CandidateProfile struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	AcademicYear   AcademicYear       `json:"academic_year"`
	Program        string             `json:"program,omitempty"`
	Skills         []SkillMention     `json:"skills"`
	Experience     []ExperienceEntry  `json:"experience,omitempty"`
	Education      []EducationEntry   `json:"education,omitempty"`
	Achievements   []AchievementEntry `json:"achievements,omitempty"`
	Availability   Availability       `json:"availability"`
	AcademicSource Span               `json:"academic_source"`
	DocumentID     string             `json:"document_id"`
	Version        int64              `json:"version"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
