package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board or internship portal.
type Platform string

// Known platforms
const (
	PlatformGreenhouse  Platform = "greenhouse"
	PlatformLever       Platform = "lever"
	PlatformWorkday     Platform = "workday"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformIndeed      Platform = "indeed"
	PlatformNaukri      Platform = "naukri"
	PlatformInternshala Platform = "internshala"
	PlatformUnknown     Platform = "unknown"
)

type platformSpec struct {
	platform Platform
	hosts    []string // matched against the host and its parent domains
	content  []string
	noise    []string
}

var platforms = []platformSpec{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformLinkedIn,
		hosts:    []string{"linkedin.com"},
		content:  []string{".show-more-less-html__markup", ".description__text", ".jobs-description"},
		noise:    []string{".sign-in-modal", ".join-form", ".similar-jobs"},
	},
	{
		platform: PlatformIndeed,
		hosts:    []string{"indeed.com", "indeed.co.in", "indeed.co.uk"},
		content:  []string{"#jobDescriptionText", ".jobsearch-JobComponent-description"},
		noise:    []string{".jobsearch-IndeedApplyButton", "#mosaic-provider-reportcontent"},
	},
	{
		platform: PlatformNaukri,
		hosts:    []string{"naukri.com"},
		content:  []string{".job-desc", ".jd-desc", "section.job-desc"},
		noise:    []string{".apply-button-container", ".similar-jobs"},
	},
	{
		platform: PlatformInternshala,
		hosts:    []string{"internshala.com"},
		content:  []string{".internship_details", ".detail_view", ".individual_internship_details"},
		noise:    []string{".apply_now_button", ".similar_internships"},
	},
}

// commonPostingNoise covers application forms, legal boilerplate and share widgets.
var commonPostingNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	if spec, ok := lookupHost(parsed.Hostname()); ok {
		return spec.platform
	}
	return PlatformUnknown
}

func lookupHost(host string) (platformSpec, bool) {
	host = strings.ToLower(host)
	for _, spec := range platforms {
		for _, h := range spec.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return spec, true
			}
		}
	}
	return platformSpec{}, false
}

func specFor(platform Platform) (platformSpec, bool) {
	for _, spec := range platforms {
		if spec.platform == platform {
			return spec, true
		}
	}
	return platformSpec{}, false
}

// ContentSelectors returns content selectors for a platform, followed by the generic posting
// selectors.
func ContentSelectors(platform Platform) []string {
	spec, ok := specFor(platform)
	if !ok {
		return PostingSelectors()
	}
	return append(append([]string{}, spec.content...), PostingSelectors()...)
}

// NoiseSelectors returns the selectors removed before extracting a platform's posting text.
func NoiseSelectors(platform Platform) []string {
	out := append([]string{}, commonPostingNoise...)
	if spec, ok := specFor(platform); ok {
		out = append(out, spec.noise...)
	}
	return out
}
