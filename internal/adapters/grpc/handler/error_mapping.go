package handler

import (
	"errors"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, payroll.ErrMissingCapability),
		errors.Is(err, payroll.ErrNegativePay):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, payroll.ErrInvalidID),
		errors.Is(err, payroll.ErrInvalidName),
		errors.Is(err, payroll.ErrInvalidAmount),
		errors.Is(err, payroll.ErrInvalidHours),
		errors.Is(err, payroll.ErrUnknownKind),
		errors.Is(err, payroll.ErrConstructionMismatch),
		errors.Is(err, payroll.ErrInvalidPageSize),
		errors.Is(err, payroll.ErrInvalidPageToken),
		errors.Is(err, payroll.ErrInvalidRunInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, payroll.ErrRecordNotFound), errors.Is(err, payroll.ErrRunNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
