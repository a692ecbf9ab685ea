// Package contact implements the per-user contact book: CRUD over owned
// contacts plus the upcoming-birthday lookup.
package contact

import "time"

// Contact is a single entry in a user's contact book.
//
// Every query is scoped by OwnerID; a contact is never visible outside its
// owner's account. Email is unique per owner, not globally.
type Contact struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"-"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Info      string     `json:"info,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Filter narrows a list query; empty fields match everything.
type Filter struct {
	FirstName string
	LastName  string
	Email     string
}

// Patch is a sparse update: nil fields keep their current value.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Birthday  *time.Time
	Info      *string
}

// Merge applies a sparse patch onto the current entity and returns the
// merged result. The receiver is not mutated.
func Merge(current *Contact, patch Patch) *Contact {
	merged := *current

	if patch.FirstName != nil {
		merged.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		merged.LastName = *patch.LastName
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.Birthday != nil {
		merged.Birthday = patch.Birthday
	}
	if patch.Info != nil {
		merged.Info = *patch.Info
	}

	return &merged
}

// # Field Identifiers

const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldBirthday  = "birthday"
	FieldInfo      = "info"
)

// BirthdayWindowDays is the lookahead of the upcoming-birthday query.
const BirthdayWindowDays = 7
