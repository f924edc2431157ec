package controllers

import (
	"net/http"

	"github.com/hosterlink/hosterlink-api/internal/app"
	"github.com/hosterlink/hosterlink-api/internal/config"
	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app: app}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("Database unreachable")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Database unreachable",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{
		Status:  "OK",
		Service: config.AppName,
	})
}
