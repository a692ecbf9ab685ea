package schema

// ContactTable represents the 'contacts.contact' table
type ContactTable struct {
	Table     string
	ID        string
	OwnerID   string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  string
	Info      string
	CreatedAt string
	UpdatedAt string
}

// Contact is the schema definition for contacts.contact
var Contact = ContactTable{
	Table:     "contacts.contact",
	ID:        "id",
	OwnerID:   "ownerid",
	FirstName: "firstname",
	LastName:  "lastname",
	Email:     "email",
	Phone:     "phone",
	Birthday:  "birthday",
	Info:      "info",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t ContactTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.FirstName, t.LastName, t.Email,
		t.Phone, t.Birthday, t.Info, t.CreatedAt, t.UpdatedAt,
	}
}
