package models

// Profile is the denormalized identity record returned by the API and cached
// locally by the session service. It is always replaced wholesale with the
// server's copy, never merged field by field.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	// AvatarURL is either a remote URL or a data URI produced client-side.
	AvatarURL string `json:"avatarUrl,omitempty"`
	// Role is only populated for back-office administrators.
	Role string `json:"role,omitempty"`
}

// Credentials is the login payload. Transient, never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload. Transient, never persisted.
type Registration struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"birthDate,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	// Role is only meaningful when registering through the back-office
	// realm; consumer sign-ups leave it empty and the field is omitted
	// from the payload. The server ignores role claims on consumer
	// registration either way.
	Role string `json:"role,omitempty"`
}

// ProfileUpdate carries the fields of a partial profile update. The server
// responds with the full authoritative profile.
type ProfileUpdate struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role,omitempty"`
}
