package service

import (
	"errors"

	"roombooking/internal/models"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrConflict        = errors.New("room already booked in this interval")
	ErrInvalidInterval = models.ErrInvalidInterval
	ErrBusy            = errors.New("room is busy, retry later")
	ErrStorage         = errors.New("storage fault")
	ErrNotInitialized  = errors.New("store not initialized")
)
