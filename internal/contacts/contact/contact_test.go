package contact_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/igorivnaolga/contactbook/internal/contacts/contact"
	"github.com/igorivnaolga/contactbook/pkg/pointer"
)

func TestMerge(t *testing.T) {
	birthday := time.Date(1990, time.December, 24, 0, 0, 0, 0, time.UTC)
	newBirthday := time.Date(1991, time.March, 1, 0, 0, 0, 0, time.UTC)

	current := &contact.Contact{
		ID:        "c1",
		OwnerID:   "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+380501234567",
		Birthday:  &birthday,
		Info:      "mathematician",
	}

	tests := []struct {
		name  string
		patch contact.Patch
		want  contact.Contact
	}{
		{
			name:  "empty patch keeps everything",
			patch: contact.Patch{},
			want:  *current,
		},
		{
			name:  "single field",
			patch: contact.Patch{Phone: pointer.To("+380679876543")},
			want: contact.Contact{
				ID: "c1", OwnerID: "u1", FirstName: "Ada", LastName: "Lovelace",
				Email: "ada@example.com", Phone: "+380679876543",
				Birthday: &birthday, Info: "mathematician",
			},
		},
		{
			name: "several fields including birthday",
			patch: contact.Patch{
				FirstName: pointer.To("Augusta"),
				Birthday:  &newBirthday,
				Info:      pointer.To(""),
			},
			want: contact.Contact{
				ID: "c1", OwnerID: "u1", FirstName: "Augusta", LastName: "Lovelace",
				Email: "ada@example.com", Phone: "+380501234567",
				Birthday: &newBirthday, Info: "",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			merged := contact.Merge(current, tc.patch)
			assert.Equal(t, tc.want, *merged)
		})
	}

	// The source entity is never mutated.
	assert.Equal(t, "Ada", current.FirstName)
	assert.Equal(t, "mathematician", current.Info)
	assert.Equal(t, &birthday, current.Birthday)
}
