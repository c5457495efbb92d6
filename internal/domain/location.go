package domain

// Locality is the display form of a resolved postal code.
type Locality struct {
	City  string `json:"city"`
	State string `json:"state"`
}

func (l Locality) String() string {
	return l.City + ", " + l.State
}

// IsZero reports whether the locality carries no usable city/state pair.
func (l Locality) IsZero() bool {
	return l.City == "" || l.State == ""
}

// GeoMatch is the best match returned by the geocoding collaborator.
type GeoMatch struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	StateCode   string  `json:"state_code"`
	PostalCode  string  `json:"postal_code"`
}

// Locality prefers the two-letter state code when the provider supplied one.
func (m *GeoMatch) Locality() Locality {
	state := m.StateCode
	if state == "" {
		state = m.State
	}
	return Locality{City: m.City, State: state}
}
