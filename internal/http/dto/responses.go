package dto

import "github.com/questboard/backend/internal/models"

type ErrorResponse struct {
	Error     string              `json:"error"`
	Fields    []models.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

type CampaignsResponse struct {
	Campaigns []models.Campaign `json:"campaigns"`
}

type CreateCampaignResponse struct {
	Message   string            `json:"message"`
	Campaigns []models.Campaign `json:"campaigns"`
	Campaign  *models.Campaign  `json:"campaign,omitempty"`
	Replayed  bool              `json:"replayed,omitempty"`
}

type ContractResponse struct {
	Address  string `json:"address"`
	Function string `json:"function"`
	Location string `json:"location"`
	ChainID  int64  `json:"chain_id,omitempty"`
}
