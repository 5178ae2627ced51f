package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bizcardx/internal/domain"
	"bizcardx/internal/export"
	"bizcardx/internal/service"
)

// maxDetectionBody caps the JSON body of the detections endpoint.
const maxDetectionBody = 16 << 20

// CardHandler handles business card endpoints.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// Extract handles POST /api/v1/cards/extract
// @Summary Preview extraction
// @Description Run OCR and field extraction on an uploaded card image without storing it
// @Tags cards
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Card image (JPG or PNG)"
// @Success 200 {object} Response{data=service.ExtractionResult}
// @Failure 400 {object} ErrorResponseBody "Missing image or unsupported type"
// @Failure 413 {object} ErrorResponseBody "Image too large"
// @Failure 422 {object} ErrorResponseBody "Recognition failed"
// @Security BearerAuth
// @Router /cards/extract [post]
func (h *CardHandler) Extract(c *gin.Context) {
	input, closeFn, ok := imageInput(c)
	if !ok {
		return
	}
	defer closeFn()

	res, err := h.cardService.Extract(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// ExtractDetections handles POST /api/v1/cards/extract/detections
// @Summary Extract from client detections
// @Description Run field extraction on OCR detections produced by the caller
// @Tags cards
// @Accept json
// @Produce json
// @Param request body DetectionsRequest true "Detections in scan order"
// @Success 200 {object} Response{data=service.ExtractionResult}
// @Failure 400 {object} ErrorResponseBody "Detections do not match the schema"
// @Security BearerAuth
// @Router /cards/extract/detections [post]
func (h *CardHandler) ExtractDetections(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDetectionBody+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read request body")
		return
	}
	if len(raw) > maxDetectionBody {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	res, err := h.cardService.ExtractDetections(c.Request.Context(), raw)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// Create handles POST /api/v1/cards
// @Summary Extract and store a card
// @Tags cards
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Card image (JPG or PNG)"
// @Success 201 {object} Response{data=domain.BusinessCard}
// @Failure 400 {object} ErrorResponseBody "Missing image or unsupported type"
// @Failure 413 {object} ErrorResponseBody "Image too large"
// @Failure 422 {object} ErrorResponseBody "Recognition failed"
// @Security BearerAuth
// @Router /cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	input, closeFn, ok := imageInput(c)
	if !ok {
		return
	}
	defer closeFn()

	card, err := h.cardService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, card)
}

// List handles GET /api/v1/cards
// @Summary List cards
// @Tags cards
// @Produce json
// @Param name query string false "Cardholder name contains"
// @Param company query string false "Company name contains"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.BusinessCard,meta=PagMeta}
// @Security BearerAuth
// @Router /cards [get]
func (h *CardHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	cards, total, err := h.cardService.List(c.Request.Context(), domain.CardFilter{
		Name:    c.Query("name"),
		Company: c.Query("company"),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, cards, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListNames handles GET /api/v1/cards/names
// @Summary List cardholder names
// @Tags cards
// @Produce json
// @Success 200 {object} Response{data=[]string}
// @Security BearerAuth
// @Router /cards/names [get]
func (h *CardHandler) ListNames(c *gin.Context) {
	names, err := h.cardService.ListNames(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, names)
}

// Lookup handles GET /api/v1/cards/lookup
// @Summary Find the latest card for a cardholder name
// @Tags cards
// @Produce json
// @Param name query string true "Exact cardholder name"
// @Success 200 {object} Response{data=domain.BusinessCard}
// @Failure 400 {object} ErrorResponseBody "Missing name"
// @Failure 404 {object} ErrorResponseBody "Card not found"
// @Security BearerAuth
// @Router /cards/lookup [get]
func (h *CardHandler) Lookup(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name query parameter is required")
		return
	}
	card, err := h.cardService.GetByName(c.Request.Context(), name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, card)
}

// GetByID handles GET /api/v1/cards/:id
// @Summary Get a card
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} Response{data=domain.BusinessCard}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [get]
func (h *CardHandler) GetByID(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	card, err := h.cardService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, card)
}

// GetImage handles GET /api/v1/cards/:id/image
// @Summary Download the stored card image
// @Tags cards
// @Produce image/png,image/jpeg
// @Param id path string true "Card ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponseBody "Card or image not found"
// @Security BearerAuth
// @Router /cards/{id}/image [get]
func (h *CardHandler) GetImage(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	data, contentType, err := h.cardService.GetImage(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	if len(data) == 0 {
		HandleError(c, domain.ErrNotFound)
		return
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Data(http.StatusOK, contentType, data)
}

// GetImageURL handles GET /api/v1/cards/:id/image-url
// @Summary Presigned URL of the archived image
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} Response{data=ImageURLResponse}
// @Failure 404 {object} ErrorResponseBody "Card not found or not archived"
// @Failure 501 {object} ErrorResponseBody "Archive disabled"
// @Security BearerAuth
// @Router /cards/{id}/image-url [get]
func (h *CardHandler) GetImageURL(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	url, err := h.cardService.GetImageURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ImageURLResponse{URL: url})
}

// Update handles PUT /api/v1/cards/:id
// @Summary Replace the card fields
// @Description Every field key must be present; values may be empty
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body UpdateCardRequest true "All nine card fields"
// @Success 200 {object} Response{data=domain.BusinessCard}
// @Failure 400 {object} ErrorResponseBody "Missing or unknown field"
// @Failure 404 {object} ErrorResponseBody "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	card, err := h.cardService.Update(c.Request.Context(), id, fields)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, card)
}

// Delete handles DELETE /api/v1/cards/:id
// @Summary Delete a card
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Card not found"
// @Security BearerAuth
// @Router /cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	if err := h.cardService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "card deleted"})
}

// Share handles POST /api/v1/cards/:id/share
// @Summary Email a card
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body service.ShareInput true "Recipient"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid recipient"
// @Failure 404 {object} ErrorResponseBody "Card not found"
// @Failure 501 {object} ErrorResponseBody "Email disabled"
// @Security BearerAuth
// @Router /cards/{id}/share [post]
func (h *CardHandler) Share(c *gin.Context) {
	id, ok := parseCardID(c)
	if !ok {
		return
	}
	var input service.ShareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.cardService.Share(c.Request.Context(), id, input); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "card shared"})
}

// Export handles GET /api/v1/cards/export
// @Summary Export all cards
// @Tags cards
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /cards/export [get]
func (h *CardHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}
	cards, err := h.cardService.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, cards); err != nil {
		HandleError(c, err)
		return
	}
	filename := export.BuildFilename("business_cards", format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// imageInput reads the "image" multipart field. On failure the error
// response is already written.
func imageInput(c *gin.Context) (service.ImageInput, func(), bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image field is required")
		return service.ImageInput{}, nil, false
	}
	return service.ImageInput{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	}, func() { _ = file.Close() }, true
}

func parseCardID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid card ID")
		return uuid.Nil, false
	}
	return id, true
}
