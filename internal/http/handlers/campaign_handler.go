package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/questboard/backend/internal/http/dto"
	"github.com/questboard/backend/internal/middleware"
	"github.com/questboard/backend/internal/models"
	"github.com/questboard/backend/internal/services"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	maxIdempotencyKeyLen = 255

	msgCampaignAdded = "Campaign added successfully"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	col, err := h.campaignService.List(c.Context())
	if err != nil {
		return h.internalError(c, "list campaigns failed", err)
	}
	return c.JSON(dto.CampaignsResponse{Campaigns: col.Campaigns})
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	reqID := middleware.GetRequestID(c)

	var req dto.CreateCampaignRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:     "invalid request body",
			Fields:    []models.FieldError{decodeFieldError(err)},
			RequestID: reqID,
		})
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:     "name is required",
			Fields:    []models.FieldError{{Field: "name", Message: "is required"}},
			RequestID: reqID,
		})
	}

	// copied: the key outlives the request in the idempotency store
	key := utils.CopyString(strings.TrimSpace(c.Get(HeaderIdempotencyKey)))
	if len(key) > maxIdempotencyKeyLen {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:     "invalid Idempotency-Key header",
			Fields:    []models.FieldError{{Field: HeaderIdempotencyKey, Message: "is too long"}},
			RequestID: reqID,
		})
	}

	res, err := h.campaignService.Create(c.Context(), req.ToModel(), services.CreateMeta{
		IdempotencyKey: key,
		RequestID:      reqID,
		Actor:          "api",
	})
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:     "validation failed",
				Fields:    verr.Fields,
				RequestID: reqID,
			})
		}
		return h.internalError(c, "create campaign failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateCampaignResponse{
		Message:   msgCampaignAdded,
		Campaigns: res.Collection.Campaigns,
		Campaign:  res.Campaign,
		Replayed:  res.Replayed,
	})
}

// MethodNotAllowed answers every method the campaigns resource does not
// support.
func (h *CampaignHandler) MethodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "GET, HEAD, POST")
	return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{
		Error:     "method not allowed",
		RequestID: middleware.GetRequestID(c),
	})
}

// internalError logs the cause and answers with a generic message so no
// filesystem detail reaches the client.
func (h *CampaignHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	reqID := middleware.GetRequestID(c)
	h.log.Error(msg, zap.String("request_id", reqID), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:     "internal error",
		RequestID: reqID,
	})
}

func decodeFieldError(err error) models.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.FieldError{Field: typeErr.Field, Message: "has invalid type " + typeErr.Value}
	}
	return models.FieldError{Field: "body", Message: "malformed JSON"}
}
