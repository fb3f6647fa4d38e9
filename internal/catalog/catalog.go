// Package catalog holds the immutable, validated career catalog and the sources it is loaded from.
package catalog

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/jonathan/career-compass/internal/parsing"
	"github.com/jonathan/career-compass/internal/personality"
	"github.com/jonathan/career-compass/internal/types"
)

// versionLength is the number of hex characters of the content hash used as version
const versionLength = 12

// Catalog is a read-only set of careers sorted by id. All accessors are safe for concurrent use.
type Catalog struct {
	version string
	label   string
	careers []types.CareerProfile
	byID    map[int]int
}

// New validates and normalizes records into a Catalog. Skill, subject and trait names are
// normalized the same way student answers are; a preferred MBTI type fills archetype axes the
// record does not declare. label is an optional human-readable name for the catalog.
func New(records []types.CareerProfile, label string) (*Catalog, error) {
	if len(records) == 0 {
		return nil, &types.ValidationError{Field: "careers", Message: "catalog has no careers"}
	}

	careers := make([]types.CareerProfile, 0, len(records))
	byID := make(map[int]int, len(records))
	for _, rec := range records {
		career, err := normalize(rec)
		if err != nil {
			return nil, err
		}
		if _, dup := byID[career.ID]; dup {
			return nil, &types.ValidationError{
				Field:   fmt.Sprintf("career[%d].id", career.ID),
				Message: "duplicate career id",
			}
		}
		byID[career.ID] = -1
		careers = append(careers, career)
	}

	slices.SortFunc(careers, func(a, b types.CareerProfile) int {
		return cmp.Compare(a.ID, b.ID)
	})
	for i, c := range careers {
		byID[c.ID] = i
	}

	version, err := contentVersion(careers)
	if err != nil {
		return nil, err
	}
	return &Catalog{version: version, label: label, careers: careers, byID: byID}, nil
}

func normalize(rec types.CareerProfile) (types.CareerProfile, error) {
	career := rec
	career.RequiredSkills = parsing.NormalizeVector(rec.RequiredSkills, parsing.NormalizeName)
	career.AcademicAffinity = parsing.NormalizeVector(rec.AcademicAffinity, parsing.NormalizeSubject)
	career.PersonalityArchetype = parsing.NormalizeVector(rec.PersonalityArchetype, parsing.NormalizeName)
	career.HistoricalDemandIndex = slices.Clone(rec.HistoricalDemandIndex)

	if rec.PreferredMBTI != "" {
		axes, ok := personality.ArchetypeFromType(rec.PreferredMBTI)
		if !ok {
			return types.CareerProfile{}, &types.ValidationError{
				Field:   fmt.Sprintf("career[%d].preferred_mbti", rec.ID),
				Message: fmt.Sprintf("invalid MBTI type %q", rec.PreferredMBTI),
			}
		}
		for axis, v := range axes {
			if _, declared := career.PersonalityArchetype[axis]; !declared {
				career.PersonalityArchetype[axis] = v
			}
		}
	}

	if err := career.Validate(); err != nil {
		return types.CareerProfile{}, err
	}
	return career, nil
}

// contentVersion hashes the canonical JSON of the careers. encoding/json sorts map keys, so
// equal content always yields the same version.
func contentVersion(careers []types.CareerProfile) (string, error) {
	data, err := json.Marshal(careers)
	if err != nil {
		return "", fmt.Errorf("failed to encode catalog for hashing: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:versionLength], nil
}

// Version identifies the catalog content.
func (c *Catalog) Version() string {
	return c.version
}

// Label returns the catalog's human-readable name, which may be empty.
func (c *Catalog) Label() string {
	return c.label
}

// Len returns the number of careers.
func (c *Catalog) Len() int {
	return len(c.careers)
}

// All returns the careers sorted by id. The returned slice is a copy; the vectors inside
// are shared and must not be modified.
func (c *Catalog) All() []types.CareerProfile {
	return slices.Clone(c.careers)
}

// Get returns the career with the given id.
func (c *Catalog) Get(id int) (types.CareerProfile, error) {
	i, ok := c.byID[id]
	if !ok {
		return types.CareerProfile{}, &types.NotFoundError{Kind: "career", ID: strconv.Itoa(id)}
	}
	return c.careers[i], nil
}

// Categories returns the sorted distinct career categories.
func (c *Catalog) Categories() []string {
	set := make(map[string]struct{}, len(c.careers))
	for _, career := range c.careers {
		set[career.Category] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}
