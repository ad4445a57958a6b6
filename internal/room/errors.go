package room

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoundInactive = errors.New("round not in progress")
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyJoined = errors.New("connection already in room")
	ErrNotInRoom     = errors.New("connection not in room")
)
