package demo

import "github.com/gradmatch/gradmatch/internal/domain/model"

// archetype shapes one kind of generated candidate: a field of study, a
// skill list ordered strongest first, experience sentences that share
// vocabulary with same-domain project descriptions, and an achievement.
type archetype struct {
	program     string
	skills      []string
	experience  []string
	achievement string
}

// Candidate archetypes. Skill names are canonical taxonomy names so every
// generated claim resolves.
var archetypes = []archetype{
	{
		program:     "Computer Science",
		skills:      []string{"Python", "Django", "PostgreSQL", "SQL", "Git"},
		experience:  []string{"Built a web application backend for the campus marketplace", "Maintained the REST APIs for a student portal"},
		achievement: "Won the university hackathon with a web application",
	},
	{
		program:     "Software Engineering",
		skills:      []string{"JavaScript", "React", "TypeScript", "HTML", "CSS"},
		experience:  []string{"Built the web frontend for a campus marketplace", "Rebuilt a club landing page in React"},
		achievement: "Open source contribution merged into a React component library",
	},
	{
		program:     "Software Engineering",
		skills:      []string{"React Native", "Swift", "Kotlin", "Git"},
		experience:  []string{"Shipped a mobile app for campus events and clubs", "Prototyped a mobile app for the student gym"},
		achievement: "Published a mobile app with a thousand downloads",
	},
	{
		program:     "Data Science",
		skills:      []string{"Python", "pandas", "SQL", "NumPy", "Excel"},
		experience:  []string{"Analyzed enrollment data and built a reporting dashboard", "Cleaned survey data for the economics department"},
		achievement: "First place in the campus data analysis competition",
	},
	{
		program:     "Data Science",
		skills:      []string{"Python", "Machine Learning", "TensorFlow", "pandas"},
		experience:  []string{"Trained machine learning models for a research project on student retention", "Reproduced a published machine learning paper for a seminar"},
		achievement: "Co-authored a research poster on retention models",
	},
	{
		program:     "Graphic Design",
		skills:      []string{"Figma", "UI Design", "UX Design", "Photoshop"},
		experience:  []string{"Designed the brand identity and landing page mockups for a startup", "Ran usability tests and redesigned the library website"},
		achievement: "Design featured in the student showcase",
	},
	{
		program:     "Marketing",
		skills:      []string{"Social Media", "Content Marketing", "SEO", "Google Analytics"},
		experience:  []string{"Planned a social media campaign for a product launch", "Grew a club newsletter with content marketing"},
		achievement: "Campaign doubled event signups in one semester",
	},
	{
		program:     "Information Systems",
		skills:      []string{"Python", "JavaScript", "SQL", "Excel", "Git"},
		experience:  []string{"Automated data entry for the registrar with Python scripts"},
		achievement: "",
	},
}

// projectTemplate shapes one generated project.
type projectTemplate struct {
	title             string
	description       string
	projectType       model.ProjectType
	duration          model.Duration
	workMode          model.RemoteMode
	requiredSkills    []string
	preferredSkills   []string
	preferredPrograms []string
	minYear           model.AcademicYear
	maxYear           model.AcademicYear
}

var projectTemplates = []projectTemplate{
	{
		title:             "Campus marketplace",
		description:       "Build a web application marketplace for campus clubs",
		projectType:       model.ProjectWebDev,
		duration:          model.DurationTwoThreeMonths,
		workMode:          model.RemoteModeRemote,
		requiredSkills:    []string{"Python", "Django", "PostgreSQL"},
		preferredSkills:   []string{"React", "Git"},
		preferredPrograms: []string{"Computer Science", "Software Engineering"},
		minYear:           model.YearSophomore,
		maxYear:           model.YearSenior,
	},
	{
		title:           "Enrollment dashboard",
		description:     "Analyze enrollment data and build a reporting dashboard for advisors",
		projectType:     model.ProjectDataAnalysis,
		duration:        model.DurationOneMonth,
		workMode:        model.RemoteModeHybrid,
		requiredSkills:  []string{"Python", "SQL", "pandas"},
		preferredSkills: []string{"Excel"},
		preferredPrograms: []string{
			"Data Science",
		},
	},
	{
		title:             "Events app",
		description:       "Build a mobile app for campus events and clubs",
		projectType:       model.ProjectMobileApp,
		duration:          model.DurationThreeSixMonths,
		workMode:          model.RemoteModeRemote,
		requiredSkills:    []string{"React Native", "Git"},
		preferredSkills:   []string{"Swift", "Kotlin"},
		preferredPrograms: []string{"Software Engineering"},
		minYear:           model.YearSophomore,
	},
	{
		title:             "Brand refresh",
		description:       "Design a new brand identity and landing page mockups for the incubator",
		projectType:       model.ProjectDesign,
		duration:          model.DurationOneToTwoWeeks,
		workMode:          model.RemoteModeRemote,
		requiredSkills:    []string{"Figma", "UI Design"},
		preferredSkills:   []string{"Photoshop"},
		preferredPrograms: []string{"Graphic Design"},
	},
	{
		title:             "Retention study",
		description:       "Research student retention with machine learning models",
		projectType:       model.ProjectResearch,
		duration:          model.DurationSixMonthsPlus,
		workMode:          model.RemoteModeRemote,
		requiredSkills:    []string{"Python", "Machine Learning"},
		preferredSkills:   []string{"TensorFlow", "pandas"},
		preferredPrograms: []string{"Data Science", "Computer Science"},
		minYear:           model.YearJunior,
	},
	{
		title:             "Launch campaign",
		description:       "Plan a social media campaign for the product launch",
		projectType:       model.ProjectMarketing,
		duration:          model.DurationOneMonth,
		workMode:          model.RemoteModeRemote,
		requiredSkills:    []string{"Social Media", "Content Marketing"},
		preferredSkills:   []string{"SEO", "Google Analytics"},
		preferredPrograms: []string{"Marketing"},
	},
}

var firstNames = []string{
	"Ava", "Bruno", "Chidi", "Dara", "Emre", "Farah", "Gustav", "Hana",
	"Ines", "Jonah", "Kofi", "Lena", "Mina", "Noor", "Otto", "Priya",
	"Quinn", "Rosa", "Sami", "Tala", "Uma", "Viktor", "Wren", "Yara",
}

var lastNames = []string{
	"Adeyemi", "Bauer", "Castillo", "Demir", "Eriksen", "Fontaine",
	"Grigoryan", "Haddad", "Ivanova", "Jansen", "Kimura", "Lindqvist",
	"Moreau", "Novak", "Okafor", "Petrov", "Quispe", "Rahimi", "Sato",
	"Tanaka",
}

var institutions = []string{
	"State University", "Riverside College", "Northgate Institute",
	"Lakeview University",
}
