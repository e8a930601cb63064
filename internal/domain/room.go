package domain

// RoomName identifies a room. Rooms exist only while they have members;
// there is no stored room entity.
type RoomName string

const MaxRoomNameLen = 36
