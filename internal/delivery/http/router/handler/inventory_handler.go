package handler

import (
	"log/slog"
	"net/http"

	"larder/internal/delivery/http/middleware"
	"larder/internal/delivery/http/response"
	"larder/internal/domain/entity"
	"larder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InventoryHandler holds dependencies for storage unit and item handlers.
type InventoryHandler struct {
	uc     usecase.InventoryUsecase
	logger *slog.Logger
}

// NewInventoryHandler is the constructor for InventoryHandler, injected by Fx.
func NewInventoryHandler(uc usecase.InventoryUsecase, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: logger,
	}
}

type createUnitRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Kind string `json:"kind" validate:"required,oneof=fridge freezer pantry cabinet other"`
}

// CreateUnit adds a new, empty storage unit.
func (h *InventoryHandler) CreateUnit(c echo.Context) error {
	var req createUnitRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid storage unit input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	unit, err := h.uc.CreateUnit(c.Request().Context(), usecase.CreateUnitInput{
		Name: req.Name,
		Kind: entity.UnitKind(req.Kind),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, unit, "Storage unit created successfully")
}

// ListUnits returns every storage unit with its contents.
func (h *InventoryHandler) ListUnits(c echo.Context) error {
	units, err := h.uc.ListUnits(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, units, "Storage units retrieved successfully")
}

// GetUnit returns a single storage unit by name.
func (h *InventoryHandler) GetUnit(c echo.Context) error {
	unit, err := h.uc.GetUnit(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, unit, "Storage unit retrieved successfully")
}

// DeleteUnit removes a storage unit with everything inside it.
func (h *InventoryHandler) DeleteUnit(c echo.Context) error {
	if err := h.uc.DeleteUnit(c.Request().Context(), c.Param("name")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Storage unit deleted successfully")
}

type addItemRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	Category       string `json:"category" validate:"required,oneof=produce meat_fish dairy beverages condiments leftovers snacks grains frozen other"`
	ExpirationDate string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

// AddItem adds an item to the unit named in the path, merging quantities
// when the item already exists there.
func (h *InventoryHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username, _ := c.Get(middleware.ContextKeyUsername).(string)

	err := h.uc.AddItem(c.Request().Context(), usecase.AddItemInput{
		UnitName:       c.Param("name"),
		ItemName:       req.Name,
		Quantity:       req.Quantity,
		Category:       entity.Category(req.Category),
		ExpirationDate: req.ExpirationDate,
		Username:       username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Item added successfully")
}

type removeItemRequest struct {
	// Zero removes the item record entirely.
	Quantity int `json:"quantity" validate:"omitempty,gte=0"`
}

type removeItemView struct {
	Removed  int  `json:"removed"`
	Remained int  `json:"remained"`
	Expired  bool `json:"expired"`
}

// RemoveItem removes some or all of an item's quantity from a unit.
func (h *InventoryHandler) RemoveItem(c echo.Context) error {
	var req removeItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid removal input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username, _ := c.Get(middleware.ContextKeyUsername).(string)

	output, err := h.uc.RemoveItem(c.Request().Context(), usecase.RemoveItemInput{
		UnitName: c.Param("name"),
		ItemName: c.Param("item"),
		Quantity: req.Quantity,
		Username: username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, removeItemView{
		Removed:  output.Removed,
		Remained: output.Remained,
		Expired:  output.Expired,
	}, "Item removed successfully")
}
