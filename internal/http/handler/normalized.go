package handler

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/http/middleware"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/service"
)

// SaveSEO godoc
// @Summary Save the SEO record
// @Tags career
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant ID"
// @Param body body service.SEOInput true "SEO settings"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Router /career/seo [put]
func SaveSEO(svc service.NormalizedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SEOInput
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		}
		rec, err := svc.SaveSEO(c.UserContext(), middleware.GetTenantID(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "SEO saved", "data": rec})
	}
}

// SaveSections godoc
// @Summary Replace the page sections and layout
// @Tags career
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /career/sections [put]
func SaveSections(svc service.NormalizedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseContent(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		}
		n, err := svc.SaveSections(c.UserContext(), middleware.GetTenantID(c), body)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("Saved %d sections", n)})
	}
}

// GetDraftData godoc
// @Summary Get the builder view of the normalized records
// @Tags career
// @Produce json
// @Param X-Tenant-ID header string true "Tenant ID"
// @Success 200 {object} service.DraftData
// @Router /career/draft-data [get]
func GetDraftData(svc service.NormalizedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := svc.GetDraftData(c.UserContext(), middleware.GetTenantID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(data)
	}
}
