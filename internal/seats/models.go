package seats

// Seat is one seat record. The id is the physical seat number (1..80)
// and never changes; room membership is derived from the layout table,
// not stored. Date fields hold "YYYY-MM-DD" strings and are treated as
// opaque by everything except the near-exit derivation. Empty string
// means "unset" for every text field.
//
// The same struct is persisted by all backends, hence the stacked tags.
type Seat struct {
	ID              int    `json:"id" bson:"_id" gorm:"primaryKey"`
	Name            string `json:"name" bson:"name"`
	Affiliation     string `json:"affiliation" bson:"affiliation"`
	EntryDate       string `json:"entry_date" bson:"entryDate"`
	ExitDate        string `json:"exit_date" bson:"exitDate"`
	Contact         string `json:"contact" bson:"contact"`
	GuardianContact string `json:"guardian_contact" bson:"guardianContact"`
	Status          string `json:"status" bson:"status" gorm:"type:varchar(8)"`
}

// Seat statuses. Empty string means the status was never set.
const (
	StatusIn  = "in"
	StatusOut = "out"
)

// TableName sets the table name for the postgres backend.
func (Seat) TableName() string {
	return "seats"
}

// DefaultSeat returns the zero-value record for a seat that was never
// written. A missing record and a default record are interchangeable.
func DefaultSeat(id int) Seat {
	return Seat{ID: id}
}

// Fields is a partial update of a seat's editable fields. Nil pointers
// leave the current value untouched; a pointer to "" clears the field.
type Fields struct {
	Name            *string
	Affiliation     *string
	EntryDate       *string
	ExitDate        *string
	Contact         *string
	GuardianContact *string
	Status          *string
}

// Apply merges the set fields into a copy of the given seat.
func (f Fields) Apply(seat Seat) Seat {
	if f.Name != nil {
		seat.Name = *f.Name
	}
	if f.Affiliation != nil {
		seat.Affiliation = *f.Affiliation
	}
	if f.EntryDate != nil {
		seat.EntryDate = *f.EntryDate
	}
	if f.ExitDate != nil {
		seat.ExitDate = *f.ExitDate
	}
	if f.Contact != nil {
		seat.Contact = *f.Contact
	}
	if f.GuardianContact != nil {
		seat.GuardianContact = *f.GuardianContact
	}
	if f.Status != nil {
		seat.Status = *f.Status
	}
	return seat
}

// ValidStatus reports whether s is one of the three allowed statuses.
func ValidStatus(s string) bool {
	return s == "" || s == StatusIn || s == StatusOut
}
