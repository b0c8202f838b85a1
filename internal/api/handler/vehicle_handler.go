package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

// VehicleHandler handles HTTP requests for fleet management.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

type createVehicleRequest struct {
	Make         string  `json:"make" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Registration string  `json:"registration" validate:"required"`
	Year         int     `json:"year,omitempty" validate:"omitempty,gt=1900"`
	DailyRate    float64 `json:"dailyRate,omitempty" validate:"omitempty,gt=0"`
}

type updateVehicleRequest struct {
	Make         *string  `json:"make,omitempty"`
	Model        *string  `json:"model,omitempty"`
	Registration *string  `json:"registration,omitempty"`
	Year         *int     `json:"year,omitempty"`
	DailyRate    *float64 `json:"dailyRate,omitempty"`
	Available    *bool    `json:"available,omitempty"`
}

// Create adds a vehicle to the fleet. Admin only.
//
// @Summary      Create a vehicle (admin)
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVehicleRequest  true  "Vehicle details"
// @Success      201   {object}  domain.Vehicle
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	vehicle, err := h.service.Create(c.Request().Context(), ports.CreateVehicleInput{
		Make:         req.Make,
		Model:        req.Model,
		Registration: req.Registration,
		Year:         req.Year,
		DailyRate:    req.DailyRate,
	})
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(http.StatusCreated, vehicle)
}

// List returns all vehicles currently available for rental.
//
// @Summary      List available vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Vehicle
// @Router       /vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	vehicles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

// Get returns a vehicle by id.
//
// @Summary      Get a vehicle
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle id"
// @Success      200  {object}  domain.Vehicle
// @Failure      404  {object}  map[string]string
// @Router       /vehicles/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	vehicle, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// Search returns the vehicle with the given registration.
//
// @Summary      Find a vehicle by registration
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        registration  path      string  true  "Registration plate"
// @Success      200           {object}  domain.Vehicle
// @Failure      404           {object}  map[string]string
// @Router       /vehicles/search/{registration} [get]
func (h *VehicleHandler) Search(c echo.Context) error {
	vehicle, err := h.service.GetByRegistration(c.Request().Context(), c.Param("registration"))
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// FilterByPrice lists available vehicles with a daily rate at or below max.
//
// @Summary      Filter vehicles by maximum daily rate
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        max  path     number  true  "Maximum daily rate"
// @Success      200  {array}  domain.Vehicle
// @Failure      400  {object} map[string]string
// @Router       /vehicles/price/{max} [get]
func (h *VehicleHandler) FilterByPrice(c echo.Context) error {
	max, err := strconv.ParseFloat(c.Param("max"), 64)
	if err != nil || max < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid maximum price"})
	}

	vehicles, err := h.service.ListByMaxRate(c.Request().Context(), max)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

// Update modifies a vehicle. Admin only.
//
// @Summary      Update a vehicle (admin)
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Vehicle id"
// @Param        body  body      updateVehicleRequest  true  "Fields to update"
// @Success      200   {object}  domain.Vehicle
// @Failure      404   {object}  map[string]string
// @Router       /vehicles/{id} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	vehicle, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateVehicleFields{
		Make:         req.Make,
		Model:        req.Model,
		Registration: req.Registration,
		Year:         req.Year,
		DailyRate:    req.DailyRate,
		Available:    req.Available,
	})
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// Delete removes a vehicle from the fleet. Admin only.
//
// @Summary      Delete a vehicle (admin)
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return vehicleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func vehicleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrVehicleNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Vehicle not found"})
	case errors.Is(err, domain.ErrVehicleExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": "Vehicle with this registration already exists"})
	case errors.Is(err, domain.ErrMissingVehicle):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required fields: make, model and registration are required"})
	}
	return err
}
