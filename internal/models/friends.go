package models

// Friend is a display-only contact card. The gradient endpoints are opaque
// color strings (hex or RGBA) chosen by the client.
type Friend struct {
	ID            string `json:"id" db:"id"`
	UserID        string `json:"-" db:"user_id"`
	Name          string `json:"name" db:"name"`
	Initials      string `json:"initials" db:"initials"`
	GradientStart string `json:"gradient_start" db:"gradient_start"`
	GradientEnd   string `json:"gradient_end" db:"gradient_end"`
}

type FriendCreate struct {
	Name          string `json:"name"`
	Initials      string `json:"initials"`
	GradientStart string `json:"gradient_start"`
	GradientEnd   string `json:"gradient_end"`
}
