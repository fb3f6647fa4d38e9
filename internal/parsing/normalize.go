// Package parsing normalizes free-form skill, subject and trait names into canonical catalog keys.
package parsing

import (
	"strings"
	"unicode"
)

// nameAliases maps common skill name variants to canonical keys
var nameAliases = map[string]string{
	"golang":      "go",
	"go_lang":     "go",
	"js":          "javascript",
	"ts":          "typescript",
	"k8s":         "kubernetes",
	"node_js":     "nodejs",
	"react_js":    "react",
	"reactjs":     "react",
	"py":          "python",
	"ml":          "machine_learning",
	"ai":          "artificial_intelligence",
	"stats":       "statistics",
	"dl":          "deep_learning",
	"ux":          "user_experience",
	"ui":          "user_interface",
	"comms":       "communication",
	"sql_queries": "sql",
}

// subjectAliases maps school subject names to the academic dimensions used by the catalog
var subjectAliases = map[string]string{
	"mathematics":            "math",
	"maths":                  "math",
	"physics":                "science",
	"chemistry":              "science",
	"biology":                "science",
	"hindi":                  "english",
	"language":               "english",
	"literature":             "english",
	"art":                    "arts",
	"fine_arts":              "arts",
	"drawing":                "arts",
	"music":                  "arts",
	"accountancy":            "commerce",
	"accounting":             "commerce",
	"economics":              "commerce",
	"business":               "commerce",
	"business_studies":       "commerce",
	"computer_science":       "computer",
	"computers":              "computer",
	"it":                     "computer",
	"information_technology": "computer",
	"programming":            "computer",
	"physical_education":     "sports",
	"pe":                     "sports",
	"social_science":         "social_activities",
	"social":                 "social_activities",
	"history":                "social_activities",
	"civics":                 "social_activities",
	"geography":              "social_activities",
	"political_science":      "social_activities",
	"social_studies":         "social_activities",
	"extracurriculars":       "social_activities",
	"extra_curricular":       "social_activities",
	"community_service":      "social_activities",
	"student_council":        "social_activities",
	"debate":                 "social_activities",
	"environmental_study":    "science",
}

var symbolReplacer = strings.NewReplacer("++", "pp", "#", "sharp")

// NormalizeName normalizes a skill or trait name to its canonical snake_case key.
// Returns "" for names with no letters or digits.
func NormalizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return ""
	}
	lower = symbolReplacer.Replace(lower)

	var sb strings.Builder
	pendingSep := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
			pendingSep = false
			continue
		}
		pendingSep = true
	}

	key := sb.String()
	if canonical, ok := nameAliases[key]; ok {
		return canonical
	}
	return key
}

// NormalizeSubject normalizes a school subject name to an academic dimension key.
func NormalizeSubject(name string) string {
	key := NormalizeName(name)
	if canonical, ok := subjectAliases[key]; ok {
		return canonical
	}
	return key
}

// NormalizeVector re-keys a vector with normalize. Empty keys are dropped and the
// maximum value wins when two source keys collapse into the same canonical key.
func NormalizeVector(in map[string]float64, normalize func(string) string) map[string]float64 {
	out := make(map[string]float64, len(in))
	for name, value := range in {
		key := normalize(name)
		if key == "" {
			continue
		}
		if existing, ok := out[key]; ok && existing >= value {
			continue
		}
		out[key] = value
	}
	return out
}
