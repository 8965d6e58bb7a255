package dto

import "github.com/questboard/backend/internal/models"

// CreateCampaignRequest is the POST /campaigns body. It has no id field:
// ids are assigned by the store.
type CreateCampaignRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Tasks       []TaskRequest `json:"tasks"`
}

// TaskRequest accepts pointsEarned and price as numbers or numeric strings.
type TaskRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Proof        string        `json:"proof"`
	PointsEarned models.Number `json:"pointsEarned"`
	Price        models.Number `json:"price"`
}

func (r CreateCampaignRequest) ToModel() models.Campaign {
	tasks := make([]models.Task, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		tasks = append(tasks, models.Task{
			Name:         t.Name,
			Description:  t.Description,
			Proof:        t.Proof,
			PointsEarned: t.PointsEarned,
			Price:        t.Price,
		})
	}
	return models.Campaign{
		Name:        r.Name,
		Description: r.Description,
		Tasks:       tasks,
	}
}
