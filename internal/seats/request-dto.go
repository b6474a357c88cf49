package seats

// SaveSeatRequest is the full edit form. A save overwrites every
// editable field, so omitted fields clear their stored values.
type SaveSeatRequest struct {
	Name            string `json:"name"`
	Affiliation     string `json:"affiliation"`
	EntryDate       string `json:"entry_date"`
	ExitDate        string `json:"exit_date"`
	Contact         string `json:"contact"`
	GuardianContact string `json:"guardian_contact"`
}

// ChangeStatusRequest toggles a seat's status without touching the
// edit form. The pointer keeps "" (clear the status) distinguishable
// from an absent field.
type ChangeStatusRequest struct {
	Status *string `json:"status" binding:"required"`
}

// EditFieldRequest updates one draft field of the open edit session.
type EditFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}
