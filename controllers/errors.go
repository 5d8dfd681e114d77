package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"storefront-service/checkout"
	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toAppError maps service and domain errors onto HTTP errors.
func toAppError(err error) *apperrors.Error {
	var (
		appErr  *apperrors.Error
		verr    *checkout.ValidationError
		formErr *services.FormError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &verr):
		return apperrors.WithFields(apperrors.ErrValidation, verr.Message, verr.Fields)
	case errors.As(err, &formErr):
		return apperrors.WithFields(apperrors.ErrValidation, formErr.Message, formErr.Fields)

	case errors.Is(err, services.ErrProductNotFound):
		return apperrors.Wrap(apperrors.ErrProductNotFound, err)
	case errors.Is(err, services.ErrNoConfirmation):
		return apperrors.Wrap(apperrors.ErrNoConfirmation, err)
	case errors.Is(err, services.ErrCartEmpty):
		return apperrors.Wrap(apperrors.ErrCartEmpty, err)
	case errors.Is(err, checkout.ErrOrderAlreadyPlaced):
		return apperrors.Wrap(apperrors.ErrOrderPlaced, err)
	case errors.Is(err, checkout.ErrTransitionNotAllowed),
		errors.Is(err, checkout.ErrFormNotActive),
		errors.Is(err, checkout.ErrMissingShipping),
		errors.Is(err, checkout.ErrMissingPayment):
		return apperrors.Wrap(apperrors.ErrInvalidStep, err)
	case errors.Is(err, checkout.ErrUnknownField),
		errors.Is(err, checkout.ErrUnknownPaymentType),
		errors.Is(err, services.ErrInvalidCalendarMonth),
		errors.Is(err, services.ErrInvalidBilling):
		return apperrors.New(apperrors.ErrBadRequest.Code, err.Error(), err)
	case errors.Is(err, services.ErrSessionUnavailable):
		return apperrors.Wrap(apperrors.ErrSessionStore, err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.ErrServiceUnavailable, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// fail records err for ErrorMiddleware and stops the handler chain.
func fail(ctx *gin.Context, err error) {
	appErr := toAppError(err)
	switch {
	case appErr.Code >= http.StatusInternalServerError:
		logger.Error(ctx, "Request failed", err, zap.String("path", ctx.FullPath()))
	case appErr.Code == http.StatusConflict:
		logger.Info(ctx, "Action rejected", zap.String("path", ctx.FullPath()), zap.String("reason", err.Error()))
	}
	_ = ctx.Error(appErr)
	ctx.Abort()
}

func badRequest(ctx *gin.Context, err error) {
	_ = ctx.Error(apperrors.New(apperrors.ErrBadRequest.Code, "Invalid request", err))
	ctx.Abort()
}

// bindOptionalJSON decodes the body into obj. An empty body is not an error
// and reports false.
func bindOptionalJSON(ctx *gin.Context, obj any) (bool, error) {
	if ctx.Request.Body == nil || ctx.Request.ContentLength == 0 {
		return false, nil
	}
	if err := ctx.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
