package rooms

import (
	"fmt"
	"sort"
)

// Layouts maps each reading room to the seats it contains, in display
// order. The ranges form a partition of 1..80: every seat id belongs to
// exactly one room.
var Layouts = map[int][]int{
	1:  {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	2:  {12, 13, 14, 15, 16, 17, 18, 19},
	3:  {20, 21, 22, 23, 24, 25},
	4:  {26, 27, 28, 29, 30, 31, 32, 33},
	5:  {34, 35, 36, 37, 38, 39, 40, 41, 42},
	6:  {43, 44, 45, 46, 47, 48, 49, 50, 51},
	7:  {52, 53, 54, 55, 56, 57, 58, 59, 60},
	8:  {61, 62, 63, 64, 65, 66, 67, 68, 69},
	9:  {70, 71, 72, 73, 74},
	10: {75, 76, 77, 78, 79, 80},
}

// seatToRoom is the reverse index built once at package init.
var seatToRoom = buildReverseIndex()

func buildReverseIndex() map[int]int {
	index := make(map[int]int)
	for roomID, seatIDs := range Layouts {
		for _, seatID := range seatIDs {
			if _, exists := index[seatID]; exists {
				panic(fmt.Sprintf("rooms: seat %d listed in more than one room", seatID))
			}
			index[seatID] = roomID
		}
	}
	return index
}

// RoomOf returns the room containing the given seat. The second return
// value is false for seat ids outside the configured layout.
func RoomOf(seatID int) (int, bool) {
	roomID, ok := seatToRoom[seatID]
	return roomID, ok
}

// RoomIDs returns all room ids in ascending order.
func RoomIDs() []int {
	ids := make([]int, 0, len(Layouts))
	for roomID := range Layouts {
		ids = append(ids, roomID)
	}
	sort.Ints(ids)
	return ids
}

// SeatsIn returns the seats of a room in display order. The returned
// slice is a copy.
func SeatsIn(roomID int) []int {
	seats := Layouts[roomID]
	out := make([]int, len(seats))
	copy(out, seats)
	return out
}

// SeatIDs returns every configured seat id, grouped by ascending room
// and in-room display order.
func SeatIDs() []int {
	var ids []int
	for _, roomID := range RoomIDs() {
		ids = append(ids, Layouts[roomID]...)
	}
	return ids
}

// Label renders the display name of a room, e.g. "2열람실".
func Label(roomID int) string {
	return fmt.Sprintf("%d열람실", roomID)
}

// SeatLabel renders the display name of a seat, e.g. "12번".
func SeatLabel(seatID int) string {
	return fmt.Sprintf("%d번", seatID)
}

// Count returns the total number of configured seats.
func Count() int {
	return len(seatToRoom)
}
