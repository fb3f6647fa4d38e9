package roadmap

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

// DefaultKey holds the fallback courses of a CourseTable section
const DefaultKey = "default"

// CourseTable suggests courses for milestones and for the stage after the roadmap.
type CourseTable struct {
	// BySkill maps a skill keyword to beginner courses. A milestone uses the longest keyword
	// contained in its skill name, or DefaultKey when none is.
	BySkill map[string][]string `json:"by_skill" mapstructure:"by_skill"`
	// ByCategory maps a career category to advanced courses, with DefaultKey as fallback.
	ByCategory map[string][]string `json:"by_category" mapstructure:"by_category"`
	// MaxPerMilestone caps the courses listed on one milestone
	MaxPerMilestone int `json:"max_per_milestone" mapstructure:"max_per_milestone"`
}

// DefaultCourses returns the built-in course suggestions.
func DefaultCourses() CourseTable {
	return CourseTable{
		BySkill: map[string][]string{
			"programming":      {"CS50: Introduction to Computer Science (Harvard)", "Python for Everybody (Coursera)"},
			"python":           {"Python for Everybody (Coursera)", "Automate the Boring Stuff with Python"},
			"data":             {"Google Data Analytics Certificate"},
			"analytics":        {"Google Data Analytics Certificate"},
			"sql":              {"SQL for Data Science (Coursera)"},
			"statistics":       {"Statistics with Python (Coursera)"},
			"machine_learning": {"Machine Learning Crash Course (Google)"},
			"design":           {"Google UX Design Certificate"},
			"communication":    {"Business Communication (LinkedIn Learning)"},
			"writing":          {"Writing in the Sciences (Coursera)"},
			DefaultKey:         {"Career Foundations Course", "Basic Skills Development"},
		},
		ByCategory: map[string][]string{
			"technology": {"AWS or Azure Cloud Certification", "Advanced Programming"},
			"healthcare": {"Medical Specialization", "Research Methods"},
			"finance":    {"CFA Preparation", "Financial Modeling"},
			"creative":   {"Portfolio Development", "Industry Software Mastery"},
			"design":     {"Portfolio Development", "Industry Software Mastery"},
			DefaultKey:   {"Advanced Professional Certification", "Leadership Course"},
		},
		MaxPerMilestone: 2,
	}
}

// Validate checks that every course list is non-empty and has no blank entries.
func (t CourseTable) Validate() error {
	if t.MaxPerMilestone < 1 {
		return &types.ValidationError{Field: "roadmap.courses.max_per_milestone", Message: "must be at least 1"}
	}
	for section, table := range map[string]map[string][]string{"by_skill": t.BySkill, "by_category": t.ByCategory} {
		for key, courses := range table {
			field := fmt.Sprintf("roadmap.courses.%s.%s", section, key)
			if strings.TrimSpace(key) == "" {
				return &types.ValidationError{Field: field, Message: "key is empty"}
			}
			if len(courses) == 0 {
				return &types.ValidationError{Field: field, Message: "needs at least one course"}
			}
			for _, c := range courses {
				if strings.TrimSpace(c) == "" {
					return &types.ValidationError{Field: field, Message: "course name is empty"}
				}
			}
		}
	}
	return nil
}

// courseIndex is a validated CourseTable with keywords in match order
type courseIndex struct {
	keywords   []string
	bySkill    map[string][]string
	byCategory map[string][]string
	max        int
}

func newCourseIndex(t CourseTable) *courseIndex {
	bySkill := make(map[string][]string, len(t.BySkill))
	for k, v := range t.BySkill {
		bySkill[k] = slices.Clone(v)
	}
	byCategory := make(map[string][]string, len(t.ByCategory))
	for k, v := range t.ByCategory {
		byCategory[strings.ToLower(k)] = slices.Clone(v)
	}

	keywords := slices.Collect(maps.Keys(bySkill))
	keywords = slices.DeleteFunc(keywords, func(k string) bool { return k == DefaultKey })
	// Longer keywords are more specific: "machine_learning" wins over "learning"
	slices.SortFunc(keywords, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), cmp.Compare(a, b))
	})
	return &courseIndex{keywords: keywords, bySkill: bySkill, byCategory: byCategory, max: t.MaxPerMilestone}
}

func (c *courseIndex) forSkill(skill string) []string {
	courses := c.bySkill[DefaultKey]
	for _, kw := range c.keywords {
		if strings.Contains(skill, kw) {
			courses = c.bySkill[kw]
			break
		}
	}
	if len(courses) > c.max {
		courses = courses[:c.max]
	}
	return slices.Clone(courses)
}

func (c *courseIndex) forCategory(category string) []string {
	if courses, ok := c.byCategory[strings.ToLower(category)]; ok {
		return slices.Clone(courses)
	}
	return slices.Clone(c.byCategory[DefaultKey])
}

// WithCourses returns a copy of g that attaches course suggestions from t to its roadmaps.
// BySkill keys must already be normalized skill names.
func (g *Generator) WithCourses(t CourseTable) (*Generator, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out := *g
	out.courses = newCourseIndex(t)
	return &out, nil
}

// AdvancedCourses returns the courses suggested once a roadmap for a career in category is
// complete. It returns nil when g has no course table.
func (g *Generator) AdvancedCourses(category string) []string {
	if g.courses == nil {
		return nil
	}
	return g.courses.forCategory(category)
}
