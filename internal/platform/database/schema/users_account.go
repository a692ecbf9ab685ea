// Package schema centralizes table and column names for raw SQL queries.
//
// Repositories reference these definitions instead of string literals so a
// rename in a migration is a one-place change.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table          string
	ID             string
	Username       string
	Email          string
	Password       string
	ConfirmedEmail string
	AvatarURL      string
	Role           string
	RefreshToken   string
	CreatedAt      string
	UpdatedAt      string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:          "users.account",
	ID:             "id",
	Username:       "username",
	Email:          "email",
	Password:       "passwordhash",
	ConfirmedEmail: "confirmedemail",
	AvatarURL:      "avatarurl",
	Role:           "role",
	RefreshToken:   "refreshtoken",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.ConfirmedEmail,
		t.AvatarURL, t.Role, t.RefreshToken, t.CreatedAt, t.UpdatedAt,
	}
}
