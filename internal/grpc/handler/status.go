package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"roombooking/internal/service"
)

func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidInterval):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrRoomNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrBusy), errors.Is(err, service.ErrNotInitialized):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, service.ErrStorage):
		return status.Error(codes.Internal, service.ErrStorage.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
