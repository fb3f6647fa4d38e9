package personality

import "strings"

// MBTI axis trait keys. Each axis value is the share of the first letter,
// so mbti_ei = 1 means fully extraverted and 0 fully introverted.
const (
	AxisEI = "mbti_ei"
	AxisSN = "mbti_sn"
	AxisTF = "mbti_tf"
	AxisJP = "mbti_jp"
)

// Big Five trait keys
const (
	TraitOpenness          = "openness"
	TraitConscientiousness = "conscientiousness"
	TraitExtraversion      = "extraversion"
	TraitAgreeableness     = "agreeableness"
	TraitNeuroticism       = "neuroticism"
)

type axis struct {
	key           string
	first, second byte
}

var axes = []axis{
	{AxisEI, 'E', 'I'},
	{AxisSN, 'S', 'N'},
	{AxisTF, 'T', 'F'},
	{AxisJP, 'J', 'P'},
}

// EncodeMBTI converts accumulated letter preference points into axis values in [0,1].
// An axis with no points on either side is encoded as 0.5.
func EncodeMBTI(points map[byte]float64) map[string]float64 {
	out := make(map[string]float64, len(axes))
	for _, a := range axes {
		first, second := points[a.first], points[a.second]
		if first+second <= 0 {
			out[a.key] = 0.5
			continue
		}
		out[a.key] = first / (first + second)
	}
	return out
}

// TypeFromAxes renders the four-letter MBTI type for encoded axis values.
// Ties resolve to the first letter of an axis. Missing axes yield "".
func TypeFromAxes(traits map[string]float64) string {
	var sb strings.Builder
	for _, a := range axes {
		v, ok := traits[a.key]
		if !ok {
			return ""
		}
		if v >= 0.5 {
			sb.WriteByte(a.first)
		} else {
			sb.WriteByte(a.second)
		}
	}
	return sb.String()
}

// ArchetypeFromType encodes a four-letter MBTI type as a crisp axis archetype,
// for catalogs that only list a preferred type.
func ArchetypeFromType(mbti string) (map[string]float64, bool) {
	mbti = strings.ToUpper(strings.TrimSpace(mbti))
	if len(mbti) != len(axes) {
		return nil, false
	}
	out := make(map[string]float64, len(axes))
	for i, a := range axes {
		switch mbti[i] {
		case a.first:
			out[a.key] = 1
		case a.second:
			out[a.key] = 0
		default:
			return nil, false
		}
	}
	return out, true
}
