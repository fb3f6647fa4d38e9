// Package profile builds canonical student profiles from raw assessment answers.
package profile

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jonathan/career-compass/internal/parsing"
	"github.com/jonathan/career-compass/internal/personality"
	"github.com/jonathan/career-compass/internal/types"
)

// Question kinds, the part of a question id before the first colon
const (
	KindSkill    = "skill"
	KindSubject  = "subject"
	KindTrait    = "trait"
	KindMBTI     = "mbti"
	KindInterest = "interest"
	KindPref     = "pref"
)

// Answer scales
const (
	skillScaleMax   = 10.0
	subjectScaleMax = 100.0
	likertMin       = 1.0
	likertMax       = 5.0
)

const mbtiLetters = "EISNTFJP"

// Builder converts an AnalysisRequest into a StudentProfile.
type Builder struct {
	defaultPace float64
}

// NewBuilder returns a Builder. defaultPace applies when the request has no pref:pace answer;
// values <= 0 select 1.0.
func NewBuilder(defaultPace float64) *Builder {
	if defaultPace <= 0 {
		defaultPace = 1.0
	}
	return &Builder{defaultPace: defaultPace}
}

// accumulator gathers answers before normalization into the profile
type accumulator struct {
	skills      map[string]float64
	subjects    map[string][]float64
	traits      map[string]float64
	mbtiPoints  map[byte]float64
	interests   []string
	preferences types.Preferences
}

// Build validates and normalizes the answers. Any malformed answer rejects the whole request
// with a ValidationError naming the question id.
func (b *Builder) Build(req types.AnalysisRequest) (types.StudentProfile, error) {
	acc := &accumulator{
		skills:      map[string]float64{},
		subjects:    map[string][]float64{},
		traits:      map[string]float64{},
		mbtiPoints:  map[byte]float64{},
		preferences: types.Preferences{Pace: b.defaultPace},
	}

	ids := make([]string, 0, len(req.Answers))
	for id := range req.Answers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := acc.add(id, req.Answers[id]); err != nil {
			return types.StudentProfile{}, err
		}
	}

	return acc.profile()
}

func (acc *accumulator) add(id string, value any) error {
	kind, name, ok := strings.Cut(id, ":")
	if !ok || name == "" {
		return invalid(id, "question id must look like <kind>:<name>")
	}

	switch kind {
	case KindSkill:
		return acc.addSkill(id, name, value)
	case KindSubject:
		return acc.addSubject(id, name, value)
	case KindTrait:
		return acc.addTrait(id, name, value)
	case KindMBTI:
		return acc.addMBTI(id, name, value)
	case KindInterest:
		return acc.addInterest(id, name, value)
	case KindPref:
		return acc.addPreference(id, name, value)
	default:
		return invalid(id, fmt.Sprintf("unknown question kind %q", kind))
	}
}

func (acc *accumulator) addSkill(id, name string, value any) error {
	v, err := numberInRange(id, value, 0, skillScaleMax)
	if err != nil {
		return err
	}
	key := parsing.NormalizeName(name)
	if key == "" {
		return invalid(id, "empty skill name")
	}
	// Aliases may collapse two answers onto one skill; keep the stronger rating
	acc.skills[key] = max(acc.skills[key], v/skillScaleMax)
	return nil
}

func (acc *accumulator) addSubject(id, name string, value any) error {
	v, err := numberInRange(id, value, 0, subjectScaleMax)
	if err != nil {
		return err
	}
	key := parsing.NormalizeSubject(name)
	if key == "" {
		return invalid(id, "empty subject name")
	}
	acc.subjects[key] = append(acc.subjects[key], v/subjectScaleMax)
	return nil
}

func (acc *accumulator) addTrait(id, name string, value any) error {
	v, err := numberInRange(id, value, likertMin, likertMax)
	if err != nil {
		return err
	}
	key := parsing.NormalizeName(name)
	if key == "" {
		return invalid(id, "empty trait name")
	}
	acc.traits[key] = (v - likertMin) / (likertMax - likertMin)
	return nil
}

// addMBTI accepts "mbti:E" or "mbti:E:<question>"; points for the same letter are summed.
func (acc *accumulator) addMBTI(id, name string, value any) error {
	letter, _, _ := strings.Cut(name, ":")
	letter = strings.ToUpper(letter)
	if len(letter) != 1 || !strings.Contains(mbtiLetters, letter) {
		return invalid(id, fmt.Sprintf("unknown MBTI letter %q", letter))
	}
	v, err := number(id, value)
	if err != nil {
		return err
	}
	if v < 0 {
		return invalid(id, fmt.Sprintf("preference points must be non-negative, got %v", v))
	}
	acc.mbtiPoints[letter[0]] += v
	return nil
}

func (acc *accumulator) addInterest(id, name string, value any) error {
	on, err := truthy(id, value)
	if err != nil {
		return err
	}
	tag := parsing.NormalizeName(name)
	if tag == "" {
		return invalid(id, "empty interest tag")
	}
	if on {
		acc.interests = append(acc.interests, tag)
	}
	return nil
}

func (acc *accumulator) addPreference(id, name string, value any) error {
	switch name {
	case "pace":
		v, err := number(id, value)
		if err != nil {
			return err
		}
		if v <= 0 {
			return invalid(id, fmt.Sprintf("pace must be positive, got %v", v))
		}
		acc.preferences.Pace = v
	case "experience":
		s, err := text(id, value)
		if err != nil {
			return err
		}
		level := strings.ToLower(strings.TrimSpace(s))
		switch level {
		case types.ExperienceEntry, types.ExperienceMid, types.ExperienceSenior, types.ExperienceLead:
			acc.preferences.ExperienceLevel = level
		default:
			return invalid(id, fmt.Sprintf("unknown experience level %q", s))
		}
	case "location":
		s, err := text(id, value)
		if err != nil {
			return err
		}
		acc.preferences.Location = parsing.NormalizeName(s)
	default:
		return invalid(id, fmt.Sprintf("unknown preference %q", name))
	}
	return nil
}

func (acc *accumulator) profile() (types.StudentProfile, error) {
	academics := make(map[string]float64, len(acc.subjects))
	for subject, scores := range acc.subjects {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		academics[subject] = sum / float64(len(scores))
	}

	traits := acc.traits
	mbtiType := ""
	if len(acc.mbtiPoints) > 0 {
		for axis, v := range personality.EncodeMBTI(acc.mbtiPoints) {
			traits[axis] = v
		}
		mbtiType = personality.TypeFromAxes(traits)
	}

	return types.NewStudentProfile(types.StudentProfile{
		Skills:      acc.skills,
		Academics:   academics,
		Personality: traits,
		Interests:   acc.interests,
		MBTIType:    mbtiType,
		Preferences: acc.preferences,
	})
}

func invalid(id, msg string) error {
	return &types.ValidationError{Field: id, Message: msg}
}

func number(id string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, invalid(id, fmt.Sprintf("expected a number, got %q", v))
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, invalid(id, fmt.Sprintf("expected a number, got %q", v))
		}
		return f, nil
	default:
		return 0, invalid(id, fmt.Sprintf("expected a number, got %T", value))
	}
}

func numberInRange(id string, value any, lo, hi float64) (float64, error) {
	v, err := number(id, value)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, invalid(id, fmt.Sprintf("must be between %v and %v, got %v", lo, hi, v))
	}
	return v, nil
}

func truthy(id string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, invalid(id, fmt.Sprintf("expected a boolean, got %q", v))
		}
		return b, nil
	default:
		n, err := number(id, value)
		if err != nil {
			return false, invalid(id, fmt.Sprintf("expected a boolean, got %T", value))
		}
		return n != 0, nil
	}
}

func text(id string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", invalid(id, fmt.Sprintf("expected a string, got %T", value))
	}
	return s, nil
}
