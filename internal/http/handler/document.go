package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/LawUtilities/ADMS.API-sub003/internal/dto"
	"github.com/LawUtilities/ADMS.API-sub003/internal/service"
)

// UploadDocument stores a document under a matter. The request is
// multipart/form-data with the content in the "file" part and the metadata
// JSON in the "document" part.
//
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Matter ID"
// @Param file formData file true "Document content"
// @Param document formData string true "Document metadata JSON (dto.CreateDocumentRequest)"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 422 {object} validationPayload
// @Router /matters/{id}/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matterID := c.Params("id")
		if _, err := uuid.Parse(matterID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		raw := c.FormValue("document")
		if raw == "" {
			return writeError(c, fiber.StatusBadRequest, "METADATA_REQUIRED", "document metadata part is required")
		}
		var req dto.CreateDocumentRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse document metadata")
		}
		if failures := req.Validate(); len(failures) > 0 {
			return writeValidationError(c, failures)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.Upload(c.UserContext(), matterID, &req, f)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetDocument returns one document's metadata.
//
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DownloadDocument streams the document content back to the client.
//
// @Summary Download a document
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, doc, err := svc.Download(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.MimeType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.FullFileName()+`"`)
		// fasthttp closes the stream once the response is sent.
		return c.SendStream(rc, int(doc.FileSize))
	}
}

// DocumentDownloadLink returns a presigned URL for fetching the content
// directly from object storage. Expiry is in seconds; the service default
// applies when omitted.
//
// @Summary Presigned download link
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Param expiry query int false "Link validity in seconds"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/download-link [get]
func DocumentDownloadLink(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var expiry time.Duration
		if s := c.Query("expiry"); s != "" {
			secs, err := strconv.Atoi(s)
			if err != nil || secs <= 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRY", "invalid expiry")
			}
			expiry = time.Duration(secs) * time.Second
		}

		url, err := svc.DownloadLink(c.UserContext(), id, expiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// CheckoutDocument marks a document as checked out for editing.
//
// @Summary Check out a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /documents/{id}/checkout [post]
func CheckoutDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Checkout(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CheckinDocument releases a checked-out document.
//
// @Summary Check in a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /documents/{id}/checkin [post]
func CheckinDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Checkin(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteDocument removes a document's content and metadata.
//
// @Summary Delete a document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
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
