package seats

import (
	"time"

	"seatboard/internal/rooms"
)

// Color tokens consumed by the display surface. The surface maps them
// to its own palette; the core never deals in concrete colors.
const (
	ColorWarning = "warning" // occupied
	ColorSuccess = "success" // checked out
	ColorNeutral = "neutral" // unknown / never set
)

const dateLayout = "2006-01-02"

// ColorFor maps a seat status to its color token. Total: anything that
// is not a known status falls through to neutral.
func ColorFor(status string) string {
	switch status {
	case StatusIn:
		return ColorWarning
	case StatusOut:
		return ColorSuccess
	default:
		return ColorNeutral
	}
}

// IsNearExit reports whether the exit date is within windowDays of
// today (inclusive on both ends: the marker shows from windowDays
// before the exit date through the exit day itself). Empty or
// unparsable dates are never near exit. Both dates are pinned to UTC
// midnight before subtracting, so the difference is a whole number of
// calendar days even when today's zone has a DST transition between
// the two dates.
func IsNearExit(exitDate string, today time.Time, windowDays int) bool {
	if exitDate == "" {
		return false
	}
	exit, err := time.Parse(dateLayout, exitDate)
	if err != nil {
		return false
	}

	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	days := int(exit.Sub(midnight).Hours() / 24)
	return days >= 0 && days <= windowDays
}

// RoomLabelFor returns the room label for a seat, or "" for seat ids
// outside the layout.
func RoomLabelFor(seatID int) string {
	roomID, ok := rooms.RoomOf(seatID)
	if !ok {
		return ""
	}
	return rooms.Label(roomID)
}

// SeatView is the derived per-seat view model. It is recomputed from
// the current record set on every request; nothing here is cached.
type SeatView struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	ExitDate    string `json:"exit_date"`
	Color       string `json:"color"`
	NearExit    bool   `json:"near_exit"`
	Status      string `json:"status"`
}

// RoomView groups the seat views of one room under its label.
type RoomView struct {
	RoomID int        `json:"room_id"`
	Label  string     `json:"label"`
	Seats  []SeatView `json:"seats"`
}

// NewSeatView derives the display attributes of a single seat.
func NewSeatView(seat Seat, today time.Time, windowDays int) SeatView {
	return SeatView{
		ID:          seat.ID,
		DisplayName: rooms.SeatLabel(seat.ID),
		Name:        seat.Name,
		ExitDate:    seat.ExitDate,
		Color:       ColorFor(seat.Status),
		NearExit:    IsNearExit(seat.ExitDate, today, windowDays),
		Status:      seat.Status,
	}
}

// BuildGrid assembles the full grid view: rooms in ascending order,
// seats in layout order, absent records rendered as defaults.
func BuildGrid(records map[int]Seat, today time.Time, windowDays int) []RoomView {
	grid := make([]RoomView, 0, len(rooms.Layouts))
	for _, roomID := range rooms.RoomIDs() {
		view := RoomView{
			RoomID: roomID,
			Label:  rooms.Label(roomID),
		}
		for _, seatID := range rooms.SeatsIn(roomID) {
			seat, ok := records[seatID]
			if !ok {
				seat = DefaultSeat(seatID)
			}
			view.Seats = append(view.Seats, NewSeatView(seat, today, windowDays))
		}
		grid = append(grid, view)
	}
	return grid
}
