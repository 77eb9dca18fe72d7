package models

type User struct {
	ID               string `json:"id" db:"id"`
	Email            string `json:"email" db:"email"`
	HashedPassword   string `json:"-" db:"hashed_password"`
	IsActive         bool   `json:"is_active" db:"is_active"`
	Username         string `json:"username" db:"username"`
	Subtitle         string `json:"subtitle" db:"subtitle"`
	ProfileImageData []byte `json:"profile_image_data,omitempty" db:"profile_image_data"`
}

type UserCreate struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate is a sparse patch: nil fields are left untouched. The credential
// hash and email are never reachable through this payload.
type UserUpdate struct {
	Username         *string `json:"username,omitempty"`
	Subtitle         *string `json:"subtitle,omitempty"`
	ProfileImageData []byte  `json:"profile_image_data,omitempty"`
}
