package models

type Campaign struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Tasks       []Task `json:"tasks" yaml:"tasks"`
}

type Task struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Proof        string `json:"proof" yaml:"proof"`
	PointsEarned Number `json:"pointsEarned" yaml:"pointsEarned"`
	Price        Number `json:"price" yaml:"price"` // reserved, always zero for now
}

// Collection is the persisted document. It is always written as an object
// with a campaigns field, never as a bare array.
type Collection struct {
	Campaigns []Campaign `json:"campaigns"`
}

// NewCollection wraps campaigns, replacing nil with an empty slice so the
// document serializes as {"campaigns": []}.
func NewCollection(campaigns []Campaign) Collection {
	if campaigns == nil {
		campaigns = []Campaign{}
	}
	return Collection{Campaigns: campaigns}
}

func (c Collection) Len() int {
	return len(c.Campaigns)
}

// Find returns the campaign with the given id.
func (c Collection) Find(id string) (Campaign, bool) {
	for _, campaign := range c.Campaigns {
		if campaign.ID == id {
			return campaign, true
		}
	}
	return Campaign{}, false
}

// Normalized returns a copy ready to be persisted: numeric fields in
// canonical form and a non-nil task list. Text fields are kept as given.
func (c Campaign) Normalized() Campaign {
	out := c
	out.Tasks = make([]Task, len(c.Tasks))
	for i, t := range c.Tasks {
		t.PointsEarned = t.PointsEarned.Normalized()
		t.Price = t.Price.Normalized()
		out.Tasks[i] = t
	}
	return out
}

func (c Campaign) TotalPoints() float64 {
	var total float64
	for _, t := range c.Tasks {
		if v, err := t.PointsEarned.Float64(); err == nil {
			total += v
		}
	}
	return total
}
