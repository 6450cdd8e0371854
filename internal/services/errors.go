package services

import (
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/metrics"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// validationFailed converts a validator error into a classified validation error.
func validationFailed(err error) error {
	return &apperrors.Error{
		Kind:    apperrors.KindValidation,
		Message: "validation failed",
		Details: utils.GetValidationErrors(err),
		Err:     err,
	}
}

// storeFailure makes sure anything the store did not classify surfaces as StoreUnavailable.
func storeFailure(err error) error {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		return apperrors.StoreUnavailable(err)
	}
	return err
}

// failed records err against operation and returns it unchanged.
func failed(operation string, err error) error {
	kind := apperrors.KindOf(err)
	metrics.OperationErrorsTotal.WithLabelValues(operation, kind.String()).Inc()
	if kind == apperrors.KindStoreUnavailable || kind == apperrors.KindInternal {
		logrus.WithError(err).WithField("operation", operation).Error("Operation failed")
	}
	return err
}
