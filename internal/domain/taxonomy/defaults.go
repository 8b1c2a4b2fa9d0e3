package taxonomy

// defaultSkills returns the builtin vocabulary. It covers the skills that
// show up in student and early-career profiles; deployments with a richer
// vocabulary load their own file via Load and WithSkills.
func defaultSkills() []Skill {
	return []Skill{
		// Languages
		{ID: "python", Name: "Python", Synonyms: []string{"py", "python3"}},
		{ID: "javascript", Name: "JavaScript", Synonyms: []string{"js", "ecmascript", "es6"}},
		{ID: "typescript", Name: "TypeScript", Synonyms: []string{"ts"}},
		{ID: "java", Name: "Java"},
		{ID: "c++", Name: "C++", Synonyms: []string{"cpp", "cplusplus"}},
		{ID: "c#", Name: "C#", Synonyms: []string{"csharp", "c sharp"}},
		{ID: "go", Name: "Go", Synonyms: []string{"golang"}},
		{ID: "ruby", Name: "Ruby"},
		{ID: "php", Name: "PHP"},
		{ID: "swift", Name: "Swift"},
		{ID: "kotlin", Name: "Kotlin"},
		{ID: "rust", Name: "Rust"},
		{ID: "sql", Name: "SQL"},
		{ID: "html", Name: "HTML", Synonyms: []string{"html5"}},
		{ID: "css", Name: "CSS", Synonyms: []string{"css3"}},

		// Frameworks and runtimes
		{ID: "django", Name: "Django", Synonyms: []string{"django rest framework", "drf"}},
		{ID: "flask", Name: "Flask"},
		{ID: "fastapi", Name: "FastAPI", Synonyms: []string{"fast api"}},
		{ID: "react", Name: "React", Synonyms: []string{"reactjs", "react.js"}},
		{ID: "react native", Name: "React Native"},
		{ID: "angular", Name: "Angular", Synonyms: []string{"angularjs"}},
		{ID: "vue", Name: "Vue", Synonyms: []string{"vuejs", "vue.js"}},
		{ID: "node.js", Name: "Node.js", Synonyms: []string{"node", "nodejs"}},
		{ID: "express", Name: "Express", Synonyms: []string{"expressjs", "express.js"}},
		{ID: "spring", Name: "Spring", Synonyms: []string{"spring boot"}},
		{ID: "rails", Name: "Ruby on Rails", Synonyms: []string{"ror"}},
		{ID: "laravel", Name: "Laravel"},
		{ID: ".net", Name: ".NET", Synonyms: []string{"dotnet", "asp.net"}},
		{ID: "flutter", Name: "Flutter", Synonyms: []string{"dart"}},

		// Data and machine learning
		{ID: "postgresql", Name: "PostgreSQL", Synonyms: []string{"postgres", "psql"}},
		{ID: "mysql", Name: "MySQL", Synonyms: []string{"mariadb"}},
		{ID: "mongodb", Name: "MongoDB", Synonyms: []string{"mongo"}},
		{ID: "redis", Name: "Redis"},
		{ID: "sqlite", Name: "SQLite"},
		{ID: "elasticsearch", Name: "Elasticsearch", Synonyms: []string{"elastic search"}},
		{ID: "pandas", Name: "pandas"},
		{ID: "numpy", Name: "NumPy"},
		{ID: "machine learning", Name: "Machine Learning", Synonyms: []string{"ml", "deep learning"}},
		{ID: "data analysis", Name: "Data Analysis", Synonyms: []string{"data analytics", "analytics"}},
		{ID: "tensorflow", Name: "TensorFlow"},
		{ID: "pytorch", Name: "PyTorch"},
		{ID: "excel", Name: "Excel", Synonyms: []string{"spreadsheets", "microsoft excel"}},

		// Tooling and infrastructure
		{ID: "git", Name: "Git", Synonyms: []string{"github", "gitlab", "version control"}},
		{ID: "docker", Name: "Docker", Synonyms: []string{"containers"}},
		{ID: "kubernetes", Name: "Kubernetes", Synonyms: []string{"k8s"}},
		{ID: "aws", Name: "AWS", Synonyms: []string{"amazon web services"}},
		{ID: "gcp", Name: "Google Cloud", Synonyms: []string{"google cloud platform"}},
		{ID: "azure", Name: "Azure", Synonyms: []string{"microsoft azure"}},
		{ID: "linux", Name: "Linux", Synonyms: []string{"unix", "bash"}},
		{ID: "ci/cd", Name: "CI/CD", Synonyms: []string{"cicd", "continuous integration", "jenkins"}},
		{ID: "rest", Name: "REST APIs", Synonyms: []string{"rest api", "restful", "web apis"}},
		{ID: "graphql", Name: "GraphQL"},

		// Design
		{ID: "figma", Name: "Figma"},
		{ID: "photoshop", Name: "Photoshop", Synonyms: []string{"adobe photoshop"}},
		{ID: "illustrator", Name: "Illustrator", Synonyms: []string{"adobe illustrator"}},
		{ID: "ui design", Name: "UI Design", Synonyms: []string{"user interface design"}},
		{ID: "ux design", Name: "UX Design", Synonyms: []string{"user experience design", "ux research"}},

		// Marketing and communication
		{ID: "seo", Name: "SEO", Synonyms: []string{"search engine optimization"}},
		{ID: "social media", Name: "Social Media", Synonyms: []string{"social media marketing"}},
		{ID: "content marketing", Name: "Content Marketing", Synonyms: []string{"content writing", "copywriting"}},
		{ID: "google analytics", Name: "Google Analytics"},
		{ID: "technical writing", Name: "Technical Writing", Synonyms: []string{"documentation"}},
	}
}
