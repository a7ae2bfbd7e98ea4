package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := hrm.healthService.Check()
	if status.Database == "unreachable" {
		gecho.InternalServerError(w,
			gecho.WithData(status),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetLiveness(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithMessage("alive"),
		gecho.Send(),
	)
}
