package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/services"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

type MaintenanceController struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceController(maintenanceService services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{maintenanceService: maintenanceService}
}

func (c *MaintenanceController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.CreateMaintenanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.maintenanceService.Create(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, m)
}

func (c *MaintenanceController) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	m, err := c.maintenanceService.Get(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, m)
}

func (c *MaintenanceController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	page, pageSize := pageParams(r)
	resp, err := c.maintenanceService.List(r.Context(), actor, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *MaintenanceController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateMaintenanceStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.maintenanceService.UpdateStatus(r.Context(), actor, mux.Vars(r)["id"], req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, m)
}

func (c *MaintenanceController) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.AssignMaintenanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.maintenanceService.Assign(r.Context(), actor, mux.Vars(r)["id"], req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, m)
}

func (c *MaintenanceController) UpdateCost(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateMaintenanceCostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.maintenanceService.UpdateCost(r.Context(), actor, mux.Vars(r)["id"], req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, m)
}
