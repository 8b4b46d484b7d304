package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/service"
)

// UpdateRevision rewrites one revision of a document. The path fixes which
// revision; the body carries the new dates and the deletion flag.
//
// @Summary Update a revision
// @Tags revisions
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param revisionNumber path int true "Revision number"
// @Param revision body dto.UpdateRevisionRequest true "Revision fields"
// @Success 200 {object} dto.RevisionResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 422 {object} validationPayload
// @Router /documents/{id}/revisions/{revisionNumber} [put]
func UpdateRevision(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("id")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		number, err := strconv.Atoi(c.Params("revisionNumber"))
		if err != nil || number < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_REVISION_NUMBER", "invalid revision number")
		}

		var req dto.UpdateRevisionRequest
		if ok, err := parseAndValidate(c, &req); !ok {
			return err
		}

		res, err := svc.Update(c.UserContext(), documentID, number, &req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListRevisions returns a document's revisions ordered by revision number.
//
// @Summary List revisions
// @Tags revisions
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {array} dto.RevisionResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/revisions [get]
func ListRevisions(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("id")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.List(c.UserContext(), documentID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
