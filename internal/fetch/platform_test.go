package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://www.linkedin.com/jobs/view/123", PlatformLinkedIn},
		{"https://in.indeed.com/viewjob?jk=abc", PlatformIndeed},
		{"https://www.indeed.co.uk/viewjob?jk=abc", PlatformIndeed},
		{"https://www.naukri.com/job-listings-data-analyst", PlatformNaukri},
		{"https://INTERNSHALA.com/internship/detail/ml-intern", PlatformInternshala},
		{"https://example.com/careers", PlatformUnknown},
		{"https://notlever.co.evil.com/job", PlatformUnknown},
		{"https://fakelever.co/job", PlatformUnknown},
		{"://broken", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors(t *testing.T) {
	greenhouse := ContentSelectors(PlatformGreenhouse)
	assert.Equal(t, ".job__description.body", greenhouse[0])
	assert.Contains(t, greenhouse, ".job-description", "generic selectors follow the platform ones")

	assert.Equal(t, PostingSelectors(), ContentSelectors(PlatformUnknown))
	assert.Equal(t, "#jobDescriptionText", ContentSelectors(PlatformIndeed)[0])
}

func TestNoiseSelectors(t *testing.T) {
	unknown := NoiseSelectors(PlatformUnknown)
	assert.Contains(t, unknown, "form")
	assert.Len(t, unknown, len(commonPostingNoise))

	lever := NoiseSelectors(PlatformLever)
	assert.Contains(t, lever, ".posting-apply")
	assert.Contains(t, lever, ".eeo-statement")

	// the shared slice must not be modified by callers appending to results
	_ = append(NoiseSelectors(PlatformWorkday), "x")
	assert.Len(t, NoiseSelectors(PlatformUnknown), len(commonPostingNoise))
}
