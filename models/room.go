package models

import (
	"gorm.io/gorm"
)

// RoomState is the occupancy state of a physical room.
type RoomState string

const (
	RoomAvailable   RoomState = "available"
	RoomOccupied    RoomState = "occupied"
	RoomMaintenance RoomState = "maintenance"
	RoomCleaning    RoomState = "cleaning"
)

var roomStates = map[RoomState]struct{}{
	RoomAvailable:   {},
	RoomOccupied:    {},
	RoomMaintenance: {},
	RoomCleaning:    {},
}

func (s RoomState) Valid() bool {
	_, ok := roomStates[s]
	return ok
}

type Room struct {
	gorm.Model

	Number      string    `json:"number" gorm:"column:number;uniqueIndex;type:varchar(10);not null"`
	RoomTypeID  uint      `json:"room_type_id" gorm:"column:room_type_id;index;not null"`
	Floor       int       `json:"floor"`
	State       RoomState `json:"state" gorm:"type:varchar(20);not null;default:available"`
	Description string    `json:"description" gorm:"type:text"`

	RoomType RoomType `json:"room_type" gorm:"foreignKey:RoomTypeID"`
}
