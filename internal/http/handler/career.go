package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/http/middleware"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/service"
)

// parseContent decodes a JSON object body. An empty body yields nil content.
func parseContent(c *fiber.Ctx) (model.Content, error) {
	raw := c.Body()
	if len(raw) == 0 {
		return nil, nil
	}
	var body model.Content
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// publishFailedMessage is all a client learns about a failed publish unless
// debug errors are enabled.
const publishFailedMessage = "Server error during publishing"

// PublishCareerPage godoc
// @Summary Publish the careers page
// @Description Publishes the request body when it carries sections or applyPage, otherwise the saved draft.
// @Tags career
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Failure 500 {object} publishErrorPayload
// @Router /career/publish [post]
func PublishCareerPage(svc service.CareerService, debugErrors bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := middleware.GetTenantID(c)
		body, err := parseContent(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		}

		res, err := svc.Publish(c.UserContext(), tenantID, body)
		if err != nil {
			if errors.Is(err, service.ErrNoContent) || errors.Is(err, service.ErrTenantRequired) {
				return serviceError(c, err)
			}

			out := publishErrorPayload{
				RequestID: middleware.GetRequestID(c),
				Code:      "PUBLISH_FAILED",
				Error:     publishFailedMessage,
				DebugInfo: debugInfo{
					HasTenantID:      tenantID != "",
					PayloadSections:  body.Has(model.KeySections),
					PayloadApplyPage: body.Has(model.KeyApplyPage),
				},
			}
			var pe *service.PublishError
			if errors.As(err, &pe) {
				out.DebugInfo.HasCompany = pe.HasCompany
			}
			if debugErrors {
				out.Error = publishFailedMessage + ": " + err.Error()
				out.Details = details(err)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(out)
		}

		return c.JSON(fiber.Map{
			"success":     true,
			"message":     "Career page published successfully",
			"livePage":    res.LivePage,
			"metaTags":    res.MetaTags,
			"publishedAt": res.PublishedAt,
			"version":     res.Version,
		})
	}
}

// GetCustomization godoc
// @Summary Get the careers page draft
// @Description Returns the draft, or a copy of the live page when no draft exists, or null.
// @Tags career
// @Produce json
// @Param X-Tenant-ID header string true "Tenant ID"
// @Success 200 {object} map[string]any
// @Router /career/customization [get]
func GetCustomization(svc service.CareerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		draft, err := svc.GetDraft(c.UserContext(), middleware.GetTenantID(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(draft)
	}
}

// SaveCustomization godoc
// @Summary Save the careers page draft
// @Tags career
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Router /career/customization [post]
func SaveCustomization(svc service.CareerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseContent(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		}
		draft, err := svc.SaveDraft(c.UserContext(), middleware.GetTenantID(c), body)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Draft saved successfully", "data": draft})
	}
}

func noCache(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set("Surrogate-Control", "no-store")
}

// GetPublicPage godoc
// @Summary Get the live careers page
// @Description Resolves the tenant by id or code. Returns null when nothing was published.
// @Tags public
// @Produce json
// @Param tenantId path string true "Tenant ID or code"
// @Success 200 {object} service.PublicPage
// @Router /career/public/{tenantId} [get]
func GetPublicPage(svc service.CareerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noCache(c)
		page, err := svc.GetPublic(c.UserContext(), c.Params("tenantId"))
		if err != nil {
			return serviceError(c, err)
		}
		if page == nil {
			return c.JSON(nil)
		}
		return c.JSON(page)
	}
}

// GetPublishedSnapshot godoc
// @Summary Get the published snapshot
// @Tags public
// @Produce json
// @Param tenantId path string true "Tenant ID or code"
// @Success 200 {object} model.PublishedPage
// @Failure 404 {object} errorPayload
// @Router /career/public/{tenantId}/snapshot [get]
func GetPublishedSnapshot(svc service.CareerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noCache(c)
		page, err := svc.GetSnapshot(c.UserContext(), c.Params("tenantId"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(page)
	}
}
