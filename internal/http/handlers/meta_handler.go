package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/questboard/backend/internal/config"
	"github.com/questboard/backend/internal/http/dto"
	"github.com/questboard/backend/internal/models"
)

// contractFunction is the mint call the web client makes after a campaign
// is submitted.
const contractFunction = "createCampaignNFT"

type MetaHandler struct {
	cfg *config.Config
}

func NewMetaHandler(cfg *config.Config) *MetaHandler {
	return &MetaHandler{cfg: cfg}
}

func (h *MetaHandler) GetContract(c *fiber.Ctx) error {
	return c.JSON(dto.ContractResponse{
		Address:  h.cfg.ContractAddress,
		Function: contractFunction,
		Location: h.cfg.NFTLocation,
		ChainID:  h.cfg.ChainID,
	})
}

// GetTaskTemplate returns the blank task a draft campaign starts from.
func (h *MetaHandler) GetTaskTemplate(c *fiber.Ctx) error {
	return c.JSON(models.Task{
		PointsEarned: models.ParseNumber(""),
		Price:        models.NewNumber(0),
	})
}
