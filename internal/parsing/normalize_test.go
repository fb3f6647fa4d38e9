package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to go", "Golang", "go"},
		{"go lang to go", "go lang", "go"},
		{"JS to javascript", "JS", "javascript"},
		{"K8s to kubernetes", "k8s", "kubernetes"},
		{"node.js to nodejs", "Node.js", "nodejs"},
		{"Multi-word becomes snake case", "Machine Learning", "machine_learning"},
		{"ML alias", "ML", "machine_learning"},
		{"Punctuation collapses", "  Data -- Analysis!  ", "data_analysis"},
		{"C++ keeps its identity", "C++", "cpp"},
		{"C# keeps its identity", "C#", "csharp"},
		{"Already canonical", "python", "python"},
		{"Empty string", "", ""},
		{"Whitespace only", "   ", ""},
		{"Symbols only", "---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mathematics", "math"},
		{"Maths", "math"},
		{"Physics", "science"},
		{"Biology", "science"},
		{"Computer Science", "computer"},
		{"IT", "computer"},
		{"Economics", "commerce"},
		{"Physical Education", "sports"},
		{"History", "social_activities"},
		{"English", "english"},
		{"Astronomy", "astronomy"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSubject(tt.input))
		})
	}
}

func TestNormalizeVector_MaxWinsOnCollision(t *testing.T) {
	in := map[string]float64{
		"Golang":  0.4,
		"go":      0.9,
		"Python":  0.5,
		"   ":     1.0,
		"SQL":     0.3,
		"sql":     0.2,
		"Node.js": 0.7,
	}

	out := NormalizeVector(in, NormalizeName)

	assert.Equal(t, map[string]float64{
		"go":     0.9,
		"python": 0.5,
		"sql":    0.3,
		"nodejs": 0.7,
	}, out)
}

func TestNormalizeVector_Empty(t *testing.T) {
	out := NormalizeVector(nil, NormalizeSubject)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
