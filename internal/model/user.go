package model

import "time"

// Role classifies what a user is allowed to do on the marketplace.
// It is a closed set: anything outside customer/executor is denied.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleExecutor Role = "executor"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleExecutor
}

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name,omitempty" gorm:"size:150"`
	LastName     string    `json:"last_name,omitempty" gorm:"size:150"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Profile carries the marketplace-facing attributes of a user.
// Every role check in the system resolves through this record; a user
// without a profile cannot pass any role gate.
type Profile struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Role           Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	Specialization string    `json:"specialization,omitempty" gorm:"size:255"`
	Rating         float64   `json:"rating" gorm:"default:0"`
	Portfolio      string    `json:"portfolio,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// RoleOrEmpty returns the user's role, or "" when no profile exists.
// Callers must treat "" as no permission at all.
func (u *User) RoleOrEmpty() Role {
	if u == nil || u.Profile == nil {
		return ""
	}
	return u.Profile.Role
}
