package scraper

import "regexp"

// techSkills is the fixed skill vocabulary matched against offer
// descriptions and CV text. Order is preserved in the results.
var techSkills = []string{
	"Python", "SQL", "Java", "JavaScript", "TypeScript", "C#", "C++", "PHP", "Ruby",
	"Angular", "React", "Vue", "Node.js", "Django", "Flask", "Spring", "Laravel", "Ruby on Rails",
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Terraform",
	"MySQL", "PostgreSQL", "Oracle", "MongoDB", "Cassandra", "Redis",
	"Hadoop", "Spark", "Kafka", "Airflow", "Databricks", "dbt",
	"Machine Learning", "Deep Learning", "NLP", "Computer Vision", "Data Mining",
	"Agile", "Scrum", "DevOps", "CI/CD", "Jenkins", "Git",
}

var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(techSkills))
	for _, skill := range techSkills {
		patterns[skill] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}

// ExtractSkills returns the vocabulary skills mentioned in the text,
// matched as case-insensitive whole words, in vocabulary order.
func ExtractSkills(text string) []string {
	var found []string
	for _, skill := range techSkills {
		if skillPatterns[skill].MatchString(text) {
			found = append(found, skill)
		}
	}
	return found
}

// SharedSkills returns the skills mentioned in both the job description
// and the CV text, in vocabulary order.
func SharedSkills(jobDescription, cvText string) []string {
	jobSkills := ExtractSkills(jobDescription)
	inJob := make(map[string]struct{}, len(jobSkills))
	for _, skill := range jobSkills {
		inJob[skill] = struct{}{}
	}

	var shared []string
	for _, skill := range ExtractSkills(cvText) {
		if _, ok := inJob[skill]; ok {
			shared = append(shared, skill)
		}
	}
	return shared
}
