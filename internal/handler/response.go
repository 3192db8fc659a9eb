package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/gostorefront/fulfillment/internal/domain/address"
	"github.com/gostorefront/fulfillment/internal/domain/order"
	"github.com/gostorefront/fulfillment/internal/domain/payment"
	"github.com/gostorefront/fulfillment/internal/domain/shipping"
)

// errorResponse is the JSON body returned for all failed requests.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized is
// treated as an internal fault: logged with context, surfaced as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	var (
		mfErr *order.MissingFieldError
		nErr  *payment.NotificationError
	)
	switch {
	case errors.As(err, &mfErr):
		status, msg = http.StatusBadRequest, mfErr.Error()
	case errors.Is(err, order.ErrAlreadyExists):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, order.ErrCartNotEmpty):
		status, msg = http.StatusPreconditionFailed, err.Error()
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, address.ErrNotFound),
		errors.Is(err, shipping.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.As(err, &nErr):
		status, msg = http.StatusBadGateway, "confirmation delivery failed"
	}

	if status >= http.StatusInternalServerError {
		zctx.From(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}
