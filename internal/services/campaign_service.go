package services

import (
	"context"

	"github.com/questboard/backend/internal/events"
	"github.com/questboard/backend/internal/models"
	"github.com/questboard/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	idempotency  repositories.IdempotencyStore
	auditRepo    *repositories.AuditRepo
	publisher    events.Publisher
	inflight     singleflight.Group
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	idempotency repositories.IdempotencyStore,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		idempotency:  idempotency,
		auditRepo:    auditRepo,
		publisher:    publisher,
		log:          log,
	}
}

// CreateMeta carries request-scoped details of a create call.
type CreateMeta struct {
	IdempotencyKey string
	RequestID      string
	Actor          string // api/cli
}

type CreateResult struct {
	// Campaign is nil on a replay whose campaign is no longer stored.
	Campaign   *models.Campaign
	Collection models.Collection
	// Replayed is set when the idempotency key had already produced a
	// campaign and nothing was appended.
	Replayed bool
}

func (s *CampaignService) List(ctx context.Context) (models.Collection, error) {
	return s.campaignRepo.LoadAll(ctx)
}

// Create appends a campaign. With an idempotency key, concurrent calls
// sharing the key collapse into one append and later retries return the
// current collection without appending again.
func (s *CampaignService) Create(ctx context.Context, c models.Campaign, meta CreateMeta) (*CreateResult, error) {
	if meta.IdempotencyKey == "" {
		return s.create(ctx, c, meta)
	}

	v, err, _ := s.inflight.Do(meta.IdempotencyKey, func() (any, error) {
		id, seen, err := s.idempotency.Get(ctx, meta.IdempotencyKey)
		if err != nil {
			// fail open: a cache outage must not block campaign creation
			s.log.Warn("idempotency lookup failed", zap.Error(err))
		}
		if seen {
			col, err := s.campaignRepo.LoadAll(ctx)
			if err != nil {
				return nil, err
			}
			res := &CreateResult{Collection: col, Replayed: true}
			if campaign, ok := col.Find(id); ok {
				res.Campaign = &campaign
			} else {
				s.log.Warn("replayed campaign not found", zap.String("campaign_id", id))
			}
			s.log.Info("idempotent replay",
				zap.String("request_id", meta.RequestID),
				zap.String("campaign_id", id),
			)
			return res, nil
		}

		res, err := s.create(ctx, c, meta)
		if err != nil {
			return nil, err
		}
		if err := s.idempotency.Put(ctx, meta.IdempotencyKey, res.Campaign.ID); err != nil {
			s.log.Warn("idempotency store failed",
				zap.String("campaign_id", res.Campaign.ID),
				zap.Error(err),
			)
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CreateResult), nil
}

func (s *CampaignService) create(ctx context.Context, c models.Campaign, meta CreateMeta) (*CreateResult, error) {
	col, err := s.campaignRepo.Append(ctx, c)
	if err != nil {
		return nil, err
	}
	// Append holds the writer lock until it returns, so the new campaign
	// is the last element of the collection it hands back.
	created := col.Campaigns[col.Len()-1]
	s.announce(ctx, created, col.Len(), meta)

	return &CreateResult{Campaign: &created, Collection: col}, nil
}

// Import appends a batch of campaigns in a single write. Nothing is
// stored when any of them is rejected.
func (s *CampaignService) Import(ctx context.Context, batch []models.Campaign, meta CreateMeta) ([]models.Campaign, models.Collection, error) {
	col, err := s.campaignRepo.AppendAll(ctx, batch)
	if err != nil {
		return nil, models.Collection{}, err
	}
	created := col.Campaigns[col.Len()-len(batch):]
	for _, c := range created {
		s.announce(ctx, c, col.Len(), meta)
	}
	return created, col, nil
}

// announce writes the audit entry and publishes campaign_created.
func (s *CampaignService) announce(ctx context.Context, created models.Campaign, total int, meta CreateMeta) {
	actor := meta.Actor
	if actor == "" {
		actor = "api"
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorType:  actor,
		Action:     "campaign_created",
		EntityType: "campaign",
		EntityID:   created.ID,
		RequestID:  meta.RequestID,
		Meta: map[string]any{
			"name":         created.Name,
			"tasks":        len(created.Tasks),
			"total_points": created.TotalPoints(),
		},
	})

	if s.publisher == nil {
		return
	}
	event := events.Event{
		Type: events.EventCampaignCreated,
		Payload: map[string]any{
			"campaign": created,
			"total":    total,
		},
	}
	if err := s.publisher.Publish(ctx, events.StreamCampaign, event); err != nil {
		s.log.Warn("publish campaign_created failed",
			zap.String("campaign_id", created.ID),
			zap.Error(err),
		)
	}
}
