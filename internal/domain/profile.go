package domain

import "time"

type ProfileType string

const (
	ProfileTypeMusician ProfileType = "musician"
	ProfileTypeVenue    ProfileType = "venue"
)

// Profile mirrors the columns of the hosted profiles table. NULL columns
// are read as zero values. SocialLinks holds the jsonb values as decoded.
type Profile struct {
	ID                   string            `json:"id"`
	Username             string            `json:"username"`
	DisplayName          string            `json:"display_name,omitempty"`
	ProfileType          ProfileType       `json:"profile_type,omitempty"`
	ProfileImageURL      string            `json:"profile_image_url"`
	Bio                  string            `json:"bio"`
	ZipCode              string            `json:"zip_code"`
	PrimaryInstrument    string            `json:"primary_instrument,omitempty"`
	SecondaryInstruments []string          `json:"secondary_instruments"`
	SocialLinks          map[string]any    `json:"social_links"`
	CreatedAt            time.Time         `json:"created_at,omitempty"`
	UpdatedAt            time.Time         `json:"updated_at,omitempty"`
}

// ProfileCompletion is derived from a Profile snapshot on every call.
type ProfileCompletion struct {
	Percentage      int      `json:"percentage"`
	CompletedFields []string `json:"completed_fields"`
	MissingFields   []string `json:"missing_fields"`
	IsUsingDefaults bool     `json:"is_using_defaults"`
}

// CompletionReport is what the presentation layer renders for a profile.
type CompletionReport struct {
	Username      string            `json:"username"`
	Completion    ProfileCompletion `json:"completion"`
	Message       string            `json:"message"`
	Encouragement string            `json:"encouragement,omitempty"`
	Location      string            `json:"location"`
}
