package model

import (
	"fmt"
	"strconv"
)

// idWidth is the zero-padded width of the numeric suffix in allocated IDs.
const idWidth = 4

// NextSequentialID allocates the next ID in a zero-padded, prefixed sequence.
// last is the most recently allocated ID in the sequence ("" when none exist);
// its numeric suffix is parsed and incremented. The sequence starts at 1.
//
// Only the trailing idWidth digits are read, so the sequence wraps after
// 9999: "USR10000" parses as 0 and the next allocation restarts at
// "USR0001". Deliberate parity with the upstream data format.
func NextSequentialID(prefix, last string) string {
	idx := 1
	if len(last) >= idWidth {
		if prev, err := strconv.Atoi(last[len(last)-idWidth:]); err == nil && prev > 0 {
			idx = prev + 1
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, idWidth, idx)
}

// NewUserID allocates the user ID following last (e.g. "USR0002" after "USR0001").
func NewUserID(last UserID) UserID {
	return UserID(NextSequentialID("USR", string(last)))
}

// NewGameID allocates the game ID following last for the given category code
// (e.g. "GAMERP0003"). The numeric suffix runs across all categories.
func NewGameID(categoryCode string, last GameID) GameID {
	return GameID(NextSequentialID("GAME"+categoryCode, string(last)))
}
