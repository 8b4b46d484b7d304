package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/service"
)

// CreateMatter registers a new matter.
//
// @Summary Create a matter
// @Tags matters
// @Accept json
// @Produce json
// @Param matter body dto.CreateMatterRequest true "Matter to create"
// @Success 201 {object} dto.MatterResponse
// @Failure 400 {object} errorPayload
// @Failure 422 {object} validationPayload
// @Router /matters [post]
func CreateMatter(svc service.MatterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.CreateMatterRequest
		if ok, err := parseAndValidate(c, &req); !ok {
			return err
		}

		res, err := svc.Create(c.UserContext(), &req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListMatters lists matters with limit & offset.
//
// @Summary List matters
// @Tags matters
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.MatterListResult
// @Failure 400 {object} errorPayload
// @Router /matters [get]
func ListMatters(svc service.MatterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetMatter returns one matter together with its documents and audit trail.
//
// @Summary Get a matter
// @Tags matters
// @Produce json
// @Param id path string true "Matter ID"
// @Success 200 {object} dto.MatterWithDocumentsResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /matters/{id} [get]
func GetMatter(svc service.MatterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.GetWithDocuments(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ArchiveMatter moves a matter into the archived state.
//
// @Summary Archive a matter
// @Tags matters
// @Produce json
// @Param id path string true "Matter ID"
// @Success 200 {object} dto.MatterResponse
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /matters/{id}/archive [post]
func ArchiveMatter(svc service.MatterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Archive(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// RestoreMatter brings an archived matter back into the active state.
//
// @Summary Restore a matter
// @Tags matters
// @Produce json
// @Param id path string true "Matter ID"
// @Success 200 {object} dto.MatterResponse
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /matters/{id}/restore [post]
func RestoreMatter(svc service.MatterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Restore(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteMatter removes a matter that owns no documents.
//
// @Summary Delete a matter
// @Tags matters
// @Param id path string true "Matter ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /matters/{id} [delete]
func DeleteMatter(svc service.MatterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
