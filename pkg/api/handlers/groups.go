package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/huemcp/pkg/api/types"
	"github.com/urmzd/huemcp/pkg/hue"
	"github.com/urmzd/huemcp/pkg/lights"
	"github.com/urmzd/huemcp/pkg/schema"
)

// GroupsHandler handles light group endpoints
type GroupsHandler struct {
	service   *lights.Service
	validator *schema.Validator
}

// NewGroupsHandler creates a new groups handler
func NewGroupsHandler(service *lights.Service, validator *schema.Validator) *GroupsHandler {
	return &GroupsHandler{service: service, validator: validator}
}

// ListGroups handles GET /groups
// @Summary      List light groups
// @Description  Returns every light group with its English and Swedish name
// @Tags         groups
// @Produce      json
// @Success      200  {object}  types.ListGroupsResponse
// @Failure      502  {object}  types.ErrorResponse  "Bridge rejected the request"
// @Failure      503  {object}  types.ErrorResponse  "Bridge unreachable"
// @Failure      504  {object}  types.ErrorResponse  "Bridge timed out"
// @Router       /groups [get]
func (h *GroupsHandler) ListGroups(c *gin.Context) {
	groups, err := h.service.ListGroups(c.Request.Context())
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ListGroupsResponse{Groups: groups, Count: len(groups)})
}

// SetColors handles PUT /groups/color
// @Summary      Set group colors
// @Description  Sets each group to a six digit hex RGB color
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request  body      types.SetColorsRequest  true  "Colors to set"
// @Success      200      {object}  types.MessageResponse
// @Success      207      {object}  lights.BatchResult     "Some groups failed"
// @Failure      400      {object}  types.ErrorResponse    "Invalid request"
// @Failure      502      {object}  lights.BatchResult     "Every group failed"
// @Router       /groups/color [put]
func (h *GroupsHandler) SetColors(c *gin.Context) {
	var req types.SetColorsRequest
	if !h.bind(c, schema.SetColors, &req) {
		return
	}

	result, err := h.service.SetColors(c.Request.Context(), req.Groups)
	if err != nil {
		validationError(c, err)
		return
	}
	if !result.OK() {
		batchError(c, result)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Light groups color set successfully."})
}

// GetBrightness handles POST /groups/brightness/query
// @Summary      Get group brightness
// @Description  Reads the brightness (0-100) of each group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request  body      types.GetBrightnessRequest  true  "Groups to read"
// @Success      200      {object}  types.BrightnessResponse
// @Success      207      {object}  lights.BatchResult  "Some groups failed"
// @Failure      400      {object}  types.ErrorResponse "Invalid request"
// @Failure      502      {object}  lights.BatchResult  "Every group failed"
// @Router       /groups/brightness/query [post]
func (h *GroupsHandler) GetBrightness(c *gin.Context) {
	var req types.GetBrightnessRequest
	if !h.bind(c, schema.GetBrightness, &req) {
		return
	}

	result := h.service.GetBrightness(c.Request.Context(), req.IDs())
	if !result.OK() {
		batchError(c, result)
		return
	}
	c.JSON(http.StatusOK, types.BrightnessResponse{Groups: result.Brightnesses()})
}

// SetBrightness handles PUT /groups/brightness
// @Summary      Set group brightness
// @Description  Sets the brightness (0-100) of each group; 0 switches the group off
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request  body      types.SetBrightnessRequest  true  "Brightness to set"
// @Success      200      {object}  types.LevelsResponse
// @Success      207      {object}  lights.BatchResult  "Some groups failed"
// @Failure      400      {object}  types.ErrorResponse "Invalid request"
// @Failure      502      {object}  lights.BatchResult  "Every group failed"
// @Router       /groups/brightness [put]
func (h *GroupsHandler) SetBrightness(c *gin.Context) {
	var req types.SetBrightnessRequest
	if !h.bind(c, schema.SetBrightness, &req) {
		return
	}

	result := h.service.SetBrightness(c.Request.Context(), req.Groups)
	if !result.OK() {
		batchError(c, result)
		return
	}
	c.JSON(http.StatusOK, types.LevelsResponse{Levels: result.Levels()})
}

// SetLocalizedName handles PUT /groups/:id/name_sv
// @Summary      Set Swedish group name
// @Description  Stores the Swedish display name of a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Group ID"
// @Param        request  body      types.SetLocalizedNameRequest   true  "Swedish name"
// @Success      200      {object}  lights.LightGroup
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Group not found"
// @Router       /groups/{id}/name_sv [put]
func (h *GroupsHandler) SetLocalizedName(c *gin.Context) {
	var req types.SetLocalizedNameRequest
	if !h.bind(c, schema.LocalizedNameBody, &req) {
		return
	}

	group, err := h.service.SetLocalizedName(c.Request.Context(), c.Param("id"), req.Name)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, group)
	case errors.Is(err, schema.ErrValidation):
		validationError(c, err)
	case errors.Is(err, lights.ErrUnknownGroup):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case hue.Kind(err) != hue.KindUnknown:
		bridgeError(c, err)
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
	}
}

// bind reads the JSON body, validates it against doc and decodes it into
// target. It writes the 400 response itself and returns false on failure.
func (h *GroupsHandler) bind(c *gin.Context, doc json.RawMessage, target any) bool {
	body, err := c.GetRawData()
	if err != nil {
		invalidRequest(c, "Failed to read request body")
		return false
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		invalidRequest(c, "Invalid request body")
		return false
	}
	if err := h.validator.Validate(doc, payload); err != nil {
		validationError(c, err)
		return false
	}
	if err := json.Unmarshal(body, target); err != nil {
		invalidRequest(c, "Invalid request body")
		return false
	}
	return true
}

func invalidRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}

func validationError(c *gin.Context, err error) {
	resp := types.ErrorResponse{Error: "validation_error", Message: err.Error()}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	c.JSON(http.StatusBadRequest, resp)
}

func bridgeError(c *gin.Context, err error) {
	kind := hue.Kind(err)
	c.JSON(statusForKinds([]string{kind}), types.ErrorResponse{
		Error:   kind,
		Message: err.Error(),
	})
}

func batchError(c *gin.Context, result lights.BatchResult) {
	if result.Partial() {
		c.JSON(http.StatusMultiStatus, result)
		return
	}
	c.JSON(statusForKinds(result.Kinds()), result)
}

// statusForKinds picks the status for a request in which every bridge call
// failed. An unreachable bridge outranks a slow one, which outranks a refusal.
func statusForKinds(kinds []string) int {
	status := http.StatusBadGateway
	for _, kind := range kinds {
		switch kind {
		case hue.KindUnreachable:
			return http.StatusServiceUnavailable
		case hue.KindTimeout:
			status = http.StatusGatewayTimeout
		}
	}
	return status
}
