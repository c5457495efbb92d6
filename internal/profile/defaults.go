package profile

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/bandseeking/bandseeking-go/internal/domain"
)

// Placeholder values written at account creation. The scorer treats a
// profile that still carries them as not customized.
const (
	DefaultBio     = "Hey there! I'm new to BandSeeking and looking to connect with other musicians."
	DefaultZipCode = "27601"
)

// DefaultUsernameRoles are the prefixes of auto-generated usernames.
var DefaultUsernameRoles = []string{
	"guitarist",
	"drummer",
	"vocalist",
	"bassist",
	"keyboardist",
	"producer",
	"songwriter",
}

var defaultUsernamePattern = regexp.MustCompile(`^(` + strings.Join(DefaultUsernameRoles, "|") + `)_\d+$`)

// IsDefaultUsername reports whether username has the auto-generated
// "<role>_<digits>" shape.
func IsDefaultUsername(username string) bool {
	return defaultUsernamePattern.MatchString(username)
}

// NewDefaultProfile returns the placeholder profile assigned to a new account.
// A nil rng uses the package-level source.
func NewDefaultProfile(rng *rand.Rand) *domain.Profile {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	role := DefaultUsernameRoles[intN(len(DefaultUsernameRoles))]
	return &domain.Profile{
		Username:             fmt.Sprintf("%s_%d", role, 1000+intN(9000)),
		ProfileType:          domain.ProfileTypeMusician,
		Bio:                  DefaultBio,
		ZipCode:              DefaultZipCode,
		SecondaryInstruments: []string{},
		SocialLinks:          map[string]any{},
	}
}
