package profile

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDefaultUsername(t *testing.T) {
	for _, name := range []string{"guitarist_1", "drummer_4821", "vocalist_007", "bassist_12", "keyboardist_3", "producer_99", "songwriter_100"} {
		assert.True(t, IsDefaultUsername(name), name)
	}
	for _, name := range []string{"", "guitarist_", "guitarist42", "Guitarist_42", "guitarist_42x", "xguitarist_42", "violinist_3", "drummer_4_2"} {
		assert.False(t, IsDefaultUsername(name), name)
	}
}

func TestNewDefaultProfileIsDetectedAsDefault(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		p := NewDefaultProfile(rng)

		assert.True(t, IsDefaultUsername(p.Username), p.Username)
		assert.Equal(t, DefaultBio, p.Bio)
		assert.Equal(t, DefaultZipCode, p.ZipCode)

		got := Score(p)
		assert.Equal(t, 0, got.Percentage)
		assert.True(t, got.IsUsingDefaults)
	}
}

func TestNewDefaultProfileWithGlobalSource(t *testing.T) {
	p := NewDefaultProfile(nil)
	assert.True(t, IsDefaultUsername(p.Username))
	assert.NotNil(t, p.SocialLinks)
}
