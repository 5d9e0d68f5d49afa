package controller

import (
	"space-booking-api/core/controller"
	"space-booking-api/core/errors"
	"space-booking-api/core/middleware"
	"space-booking-api/core/params"
	"space-booking-api/modules/space/dto"
	"space-booking-api/modules/space/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SpaceController struct {
	service service.SpaceServiceInterface
	controller.BaseController
}

func NewSpaceController(svc service.SpaceServiceInterface) *SpaceController {
	return &SpaceController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

// CreateSpace creates a new bookable space
// @Summary Create a space
// @Tags Space
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSpaceRequest true "Space definition"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/spaces [post]
func (c *SpaceController) CreateSpace(ctx echo.Context) error {
	orgID, ok := middleware.GetOrgID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateSpaceRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	space, appErr := c.service.CreateSpace(ctx.Request().Context(), orgID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, space, "Space created")
}

// ListSpaces lists the caller organization's spaces
// @Summary List spaces
// @Tags Space
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/spaces [get]
func (c *SpaceController) ListSpaces(ctx echo.Context) error {
	orgID, ok := middleware.GetOrgID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	queryParams := params.NewQueryParams(ctx)
	result, err := c.service.ListSpaces(ctx.Request().Context(), orgID, *queryParams)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to list spaces")
	}
	return c.SuccessResponse(ctx, result, "Spaces retrieved")
}

// GetSpace returns one space with its rules
// @Summary Get a space
// @Tags Space
// @Security BearerAuth
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/spaces/{id} [get]
func (c *SpaceController) GetSpace(ctx echo.Context) error {
	orgID, ok := middleware.GetOrgID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid space id")
	}

	space, err := c.service.GetSpace(ctx.Request().Context(), id)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to load space")
	}
	if space == nil || space.OrgID != orgID {
		return c.NotFound(errors.ErrNotFound, "Space not found")
	}

	rules, err := c.service.GetRules(ctx.Request().Context(), id)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to load rules")
	}

	return c.SuccessResponse(ctx, map[string]any{
		"space": space,
		"rules": rules,
	}, "Space retrieved")
}

// UpdateRules replaces the booking policy of a space
// @Summary Update booking rules
// @Tags Space
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body dto.UpdateRulesRequest true "New rules"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/spaces/{id}/rules [put]
func (c *SpaceController) UpdateRules(ctx echo.Context) error {
	orgID, ok := middleware.GetOrgID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid space id")
	}

	req := new(dto.UpdateRulesRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	rules, appErr := c.service.UpdateRules(ctx.Request().Context(), orgID, id, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, rules, "Rules updated")
}
