package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phonekit/internal/numbers/service"
	"phonekit/internal/numbers/transport"
	"phonekit/platform/httpkit"
	"phonekit/platform/validator"
)

// Handler handles HTTP requests for phone numbers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new numbers handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Inspect parses and classifies one number.
// GET /api/v1/numbers/inspect?text=...&region=...
func (h *Handler) Inspect(c *gin.Context) {
	var req transport.InspectRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.svc.Inspect(c.Request.Context(), req.Text, req.Region)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Batch inspects many numbers.
// POST /api/v1/numbers/batch
func (h *Handler) Batch(c *gin.Context) {
	var req transport.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if !h.validate(c, req) {
		return
	}

	result, err := h.svc.Batch(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Format renders one number.
// GET /api/v1/numbers/format?text=...&format=...&callingFrom=...&mobile=...
func (h *Handler) Format(c *gin.Context) {
	var req transport.FormatRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.svc.Format(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Describe returns location, carrier and time zones of a number.
// GET /api/v1/numbers/describe?text=...&locale=...&userRegion=...&carrierMode=...
func (h *Handler) Describe(c *gin.Context) {
	var req transport.DescribeRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.svc.Describe(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListRegions lists the supported regions.
// GET /api/v1/regions
func (h *Handler) ListRegions(c *gin.Context) {
	httpkit.OK(c, h.svc.Regions())
}

// Example returns a region's example number.
// GET /api/v1/regions/:region/example?type=...
func (h *Handler) Example(c *gin.Context) {
	var req transport.ExampleRequest
	if err := c.ShouldBindUri(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if !h.validate(c, req) {
		return
	}

	result, err := h.svc.Example(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// NetworkExample returns the example number of a global network.
// GET /api/v1/networks/:callingCode/example
func (h *Handler) NetworkExample(c *gin.Context) {
	var req transport.NetworkExampleRequest
	if err := c.ShouldBindUri(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if !h.validate(c, req) {
		return
	}

	result, err := h.svc.NetworkExample(req.CallingCode)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	return h.validate(c, req)
}

func (h *Handler) validate(c *gin.Context, req any) bool {
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return false
	}
	return true
}
