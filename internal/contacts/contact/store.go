package contact

import "context"

// Repository defines the owner-scoped data access contract for contacts.
type Repository interface {
	// List returns the owner's contacts matching the filter, plus the total
	// count before pagination.
	List(context context.Context, ownerID string, filter Filter, limit, offset int) ([]*Contact, int, error)

	// Get returns one contact; a foreign or unknown id is a NotFound.
	Get(context context.Context, ownerID, id string) (*Contact, error)

	// Create persists a new contact. A duplicate email within the same
	// owner's book surfaces as a Conflict.
	Create(context context.Context, entry *Contact) error

	// Update persists the full merged entity.
	Update(context context.Context, entry *Contact) error

	// Delete removes the contact permanently.
	Delete(context context.Context, ownerID, id string) error

	// UpcomingBirthdays returns contacts whose birthday falls within the
	// next [BirthdayWindowDays] days, including the year-end wrap.
	UpcomingBirthdays(context context.Context, ownerID string) ([]*Contact, error)
}
