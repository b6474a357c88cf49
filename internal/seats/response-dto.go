package seats

// EditorStateResponse describes the open edit session.
type EditorStateResponse struct {
	SeatID int  `json:"seat_id"`
	Form   Form `json:"form"`
}
