package handler

import (
	"errors"

	"itapp/internal/delivery/http/middleware"
	ucapp "itapp/internal/usecase/application"
	ucauth "itapp/internal/usecase/auth"
	ucjob "itapp/internal/usecase/job"
	ucnotification "itapp/internal/usecase/notification"
	ucprofile "itapp/internal/usecase/profile"
	ucreport "itapp/internal/usecase/report"

	"github.com/gofiber/fiber/v3"
)

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, ucauth.ErrCompanyNotVerified):
		return middleware.NewAppError(fiber.StatusForbidden, "Company has not been verified yet", nil, err)
	case errors.Is(err, ucauth.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, ucauth.ErrTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
	case errors.Is(err, ucauth.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return internalError(err)
	}
}

func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return internalError(err)
	}
}

func mapWorkflowError(err error) error {
	switch {
	case errors.Is(err, ucapp.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucapp.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucapp.ErrNotSaved):
		return middleware.NewAppError(fiber.StatusNotFound, "Saved application not found", nil, err)
	case errors.Is(err, ucapp.ErrNoPlacement):
		return middleware.NewAppError(fiber.StatusNotFound, "No current placement", nil, err)
	case errors.Is(err, ucapp.ErrAlreadyApplied),
		errors.Is(err, ucapp.ErrAlreadyAccepted),
		errors.Is(err, ucapp.ErrAlreadyShortlisted),
		errors.Is(err, ucapp.ErrAlreadySaved):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.Is(err, ucapp.ErrDeclineNotAllowed):
		return middleware.NewAppError(fiber.StatusForbidden, err.Error(), nil, err)
	default:
		return internalError(err)
	}
}

func mapReportError(err error) error {
	if errors.Is(err, ucreport.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	}
	return internalError(err)
}

func mapNotificationError(err error) error {
	switch {
	case errors.Is(err, ucnotification.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, ucnotification.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, err)
	default:
		return internalError(err)
	}
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, ucprofile.ErrInvalidInput),
		errors.Is(err, ucprofile.ErrUnsupportedFile):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, ucprofile.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, err.Error(), nil, err)
	case errors.Is(err, ucprofile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	default:
		return internalError(err)
	}
}
