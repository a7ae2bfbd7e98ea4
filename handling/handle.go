package handling

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
)

// HandleServiceError maps service-layer errors onto the wire. Sentinel errors
// get their canonical status codes; anything unrecognized is a 500 with the
// detail kept out of the response body.
func HandleServiceError(err error, logger *gecho.Logger, w http.ResponseWriter) error {
	var validationErr *lib.ValidationError
	if errors.As(err, &validationErr) {
		return gecho.BadRequest(w,
			gecho.WithMessage("error.request.validationFailed"),
			gecho.WithData(validationErr),
			gecho.Send(),
		)
	}

	switch {
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w,
			gecho.WithMessage("error.resource.notFound"),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrForbidden):
		return gecho.Forbidden(w,
			gecho.WithMessage("error.auth.accessDenied"),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrInvalidState):
		return gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidState"),
			gecho.WithData(map[string]string{"error": err.Error()}),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrAmountMismatch):
		return gecho.BadRequest(w,
			gecho.WithMessage("error.payment.amountMismatch"),
			gecho.WithData(map[string]string{"error": err.Error()}),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrConflict):
		return gecho.BadRequest(w,
			gecho.WithMessage("error.resource.conflict"),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrInvalidToken), errors.Is(err, lib.ErrExpiredToken):
		return gecho.Unauthorized(w,
			gecho.WithMessage("error.auth.invalidOrMissingAccessToken"),
			gecho.Send(),
		)
	}

	logger.Error("Unhandled service error", gecho.Field("error", err), gecho.WithCallerSkip(3))
	return gecho.InternalServerError(w, gecho.Send())
}
