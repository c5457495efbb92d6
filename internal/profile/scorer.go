package profile

import (
	"encoding/json"
	"math"

	"github.com/bandseeking/bandseeking-go/internal/domain"
)

// Checklist labels, in display order.
const (
	FieldProfilePhoto         = "Profile Photo"
	FieldCustomBio            = "Custom Bio"
	FieldLocation             = "Location"
	FieldSocialLinks          = "Social Links"
	FieldSecondaryInstruments = "Secondary Instruments"
	FieldCustomUsername       = "Custom Username"
)

type fieldCheck struct {
	label      string
	customized func(p *domain.Profile) bool
}

var checklist = []fieldCheck{
	{FieldProfilePhoto, func(p *domain.Profile) bool { return p.ProfileImageURL != "" }},
	{FieldCustomBio, func(p *domain.Profile) bool { return p.Bio != "" && p.Bio != DefaultBio }},
	{FieldLocation, func(p *domain.Profile) bool { return p.ZipCode != "" && p.ZipCode != DefaultZipCode }},
	{FieldSocialLinks, hasSocialLink},
	{FieldSecondaryInstruments, func(p *domain.Profile) bool { return len(p.SecondaryInstruments) > 0 }},
	{FieldCustomUsername, func(p *domain.Profile) bool { return p.Username != "" && !IsDefaultUsername(p.Username) }},
}

func hasSocialLink(p *domain.Profile) bool {
	for _, link := range p.SocialLinks {
		if truthy(link) {
			return true
		}
	}
	return false
}

// truthy treats empty strings, false, zero, NaN and null as unset. Objects
// and arrays count as set even when empty.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case int:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}

// Score evaluates every checklist field independently. Missing values
// count as not customized; a nil profile is scored like an empty one.
func Score(p *domain.Profile) domain.ProfileCompletion {
	if p == nil {
		p = &domain.Profile{}
	}

	completed := make([]string, 0, len(checklist))
	missing := make([]string, 0, len(checklist))
	for _, check := range checklist {
		if check.customized(p) {
			completed = append(completed, check.label)
		} else {
			missing = append(missing, check.label)
		}
	}

	return domain.ProfileCompletion{
		Percentage:      int(math.Round(100 * float64(len(completed)) / float64(len(checklist)))),
		CompletedFields: completed,
		MissingFields:   missing,
		IsUsingDefaults: IsUsingDefaults(p),
	}
}

// IsUsingDefaults is a coarser signal than Score's percentage and can
// disagree with it: photo, links and instruments are not considered.
func IsUsingDefaults(p *domain.Profile) bool {
	if p == nil {
		return false
	}
	return p.Bio == DefaultBio || p.ZipCode == DefaultZipCode || IsDefaultUsername(p.Username)
}

const (
	MessageComplete       = "Your profile is complete! Other musicians can see everything that makes you stand out."
	MessageAlmostThere    = "Almost there! Just a few more details to make your profile shine."
	MessageGoodProgress   = "Good progress! Keep customizing to stand out to bands and venues."
	MessageTakingShape    = "Your profile is taking shape. Add more details to attract collaborators."
	MessageCustomizeFirst = "Customize your default profile settings so other musicians can find you."
)

// CompletionMessage picks the message for a percentage. Thresholds are
// inclusive lower bounds checked from the highest down.
func CompletionMessage(percentage int) string {
	switch {
	case percentage >= 100:
		return MessageComplete
	case percentage >= 80:
		return MessageAlmostThere
	case percentage >= 60:
		return MessageGoodProgress
	case percentage >= 40:
		return MessageTakingShape
	default:
		return MessageCustomizeFirst
	}
}
