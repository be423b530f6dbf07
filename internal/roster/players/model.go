package players

import "time"

// Player represents a licensed club player.
type Player struct {
	ID            int64      `json:"id"`
	FullName      string     `json:"full_name"`
	Category      string     `json:"category"`
	Position      string     `json:"position"`
	LicenseNumber string     `json:"license_number"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	JoinedAt      *time.Time `json:"joined_at,omitempty"`
	Active        bool       `json:"active"`
}
