package model

import "time"

// ProjectType buckets projects by domain.
type ProjectType string

// Project types.
const (
	ProjectWebDev       ProjectType = "web_dev"
	ProjectMobileApp    ProjectType = "mobile_app"
	ProjectDataAnalysis ProjectType = "data_analysis"
	ProjectResearch     ProjectType = "research"
	ProjectDesign       ProjectType = "design"
	ProjectMarketing    ProjectType = "marketing"
	ProjectOther        ProjectType = "other"
)

// Duration buckets the expected length of a project.
type Duration string

// Project durations.
const (
	DurationOneToTwoWeeks  Duration = "1-2_weeks"
	DurationOneMonth       Duration = "1_month"
	DurationTwoThreeMonths Duration = "2-3_months"
	DurationThreeSixMonths Duration = "3-6_months"
	DurationSixMonthsPlus  Duration = "6+_months"
)

// ProjectRequirement is the scoring input for one project. Skills are free
// text as entered by the project owner and are resolved against the taxonomy
// at scoring time. MinYear/MaxYear bound the accepted academic-year band;
// zero leaves that end open. Version increases monotonically on every store
// write and feeds the match cache key.
type ProjectRequirement struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description,omitempty"`
	Type              ProjectType  `json:"type"`
	Duration          Duration     `json:"duration"`
	WorkMode          RemoteMode   `json:"work_mode"`
	RequiredSkills    []string     `json:"required_skills"`
	PreferredSkills   []string     `json:"preferred_skills,omitempty"`
	PreferredPrograms []string     `json:"preferred_programs,omitempty"`
	MinYear           AcademicYear `json:"min_year,omitempty"`
	MaxYear           AcademicYear `json:"max_year,omitempty"`
	Version           int64        `json:"version"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// YearDistance reports how many years the candidate's standing falls outside
// the accepted band. Zero means within the band; an unknown candidate year
// counts as one off. A project with no band accepts every year.
func (p ProjectRequirement) YearDistance(year AcademicYear) int {
	if p.MinYear == YearUnknown && p.MaxYear == YearUnknown {
		return 0
	}
	if year == YearUnknown {
		return 1
	}
	if p.MinYear != YearUnknown && year < p.MinYear {
		return int(p.MinYear - year)
	}
	if p.MaxYear != YearUnknown && year > p.MaxYear {
		return int(year - p.MaxYear)
	}
	return 0
}
