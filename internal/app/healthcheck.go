package app

import (
	"net/http"

	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/vcs"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	systemInfo := api.SystemInfo{
		Version:     vcs.Version(),
		Environment: app.config.Env,
	}

	resp := api.HealthcheckResponse{
		Status:     status,
		SystemInfo: systemInfo,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
