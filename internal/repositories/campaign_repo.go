package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/questboard/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// CampaignRepo stores the campaign collection in a single JSON file.
// Appending is the only mutation and runs as a serialized read-modify-write;
// LoadAll takes no lock and relies on atomic replacement of the file.
type CampaignRepo struct {
	path    string
	writer  *semaphore.Weighted
	newID   func() (string, error)
	syncDir func(dir string) error
	log     *zap.Logger
}

func NewCampaignRepo(path string, log *zap.Logger) *CampaignRepo {
	return &CampaignRepo{
		path:    path,
		writer:  semaphore.NewWeighted(1),
		newID:   newCampaignID,
		syncDir: syncDir,
		log:     log,
	}
}

func newCampaignID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *CampaignRepo) Path() string {
	return r.path
}

// LoadAll returns the persisted collection. A missing file is an empty
// collection, not an error.
func (r *CampaignRepo) LoadAll(ctx context.Context) (models.Collection, error) {
	if err := ctx.Err(); err != nil {
		return models.Collection{}, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewCollection(nil), nil
		}
		return models.Collection{}, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, r.path, err)
	}

	col, err := decodeCollection(data)
	if err != nil {
		return models.Collection{}, fmt.Errorf("%s: %w", r.path, err)
	}
	return col, nil
}

// Append validates c, assigns it an id when it has none, and persists the
// collection with c at the end. The returned collection includes c.
func (r *CampaignRepo) Append(ctx context.Context, c models.Campaign) (models.Collection, error) {
	if err := c.Validate(); err != nil {
		return models.Collection{}, err
	}
	return r.appendLocked(ctx, []models.Campaign{c})
}

// AppendAll appends a batch in one write: either every campaign is
// persisted or none is. Field names in a ValidationError are prefixed
// with the campaign's position in the batch.
func (r *CampaignRepo) AppendAll(ctx context.Context, batch []models.Campaign) (models.Collection, error) {
	if len(batch) == 0 {
		return r.LoadAll(ctx)
	}
	verr := &models.ValidationError{}
	for i, c := range batch {
		var cerr *models.ValidationError
		if err := c.Validate(); errors.As(err, &cerr) {
			for _, f := range cerr.Fields {
				verr.Add(fmt.Sprintf("[%d].%s", i, f.Field), f.Message)
			}
		}
	}
	if !verr.Empty() {
		return models.Collection{}, verr
	}
	return r.appendLocked(ctx, batch)
}

func (r *CampaignRepo) appendLocked(ctx context.Context, batch []models.Campaign) (models.Collection, error) {
	if err := r.writer.Acquire(ctx, 1); err != nil {
		return models.Collection{}, err
	}
	defer r.writer.Release(1)

	col, err := r.LoadAll(ctx)
	if err != nil {
		return models.Collection{}, err
	}

	ids := make(map[string]struct{}, col.Len()+len(batch))
	for _, c := range col.Campaigns {
		ids[c.ID] = struct{}{}
	}

	campaigns := make([]models.Campaign, 0, col.Len()+len(batch))
	campaigns = append(campaigns, col.Campaigns...)
	for i, c := range batch {
		c = c.Normalized()
		if c.ID == "" {
			id, err := r.newID()
			if err != nil {
				return models.Collection{}, fmt.Errorf("generate campaign id: %w", err)
			}
			c.ID = id
		} else if _, exists := ids[c.ID]; exists {
			field := "id"
			if len(batch) > 1 {
				field = fmt.Sprintf("[%d].id", i)
			}
			return models.Collection{}, models.NewValidationError(field, "already exists")
		}
		ids[c.ID] = struct{}{}
		campaigns = append(campaigns, c)
	}
	next := models.NewCollection(campaigns)

	if err := r.save(next); err != nil {
		return models.Collection{}, err
	}

	for _, c := range next.Campaigns[col.Len():] {
		r.log.Debug("campaign appended",
			zap.String("campaign_id", c.ID),
			zap.Int("tasks", len(c.Tasks)),
			zap.Int("total", next.Len()),
		)
	}
	return next, nil
}

func (r *CampaignRepo) save(col models.Collection) error {
	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return fmt.Errorf("encode campaigns: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(r.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, r.path, err)
	}
	// The new content is already visible once renamed; failing here must
	// not report the append as lost.
	if err := r.syncDir(filepath.Dir(r.path)); err != nil {
		r.log.Warn("data directory sync failed", zap.String("path", r.path), zap.Error(err))
	}
	return nil
}

type collectionDocument struct {
	Campaigns *[]models.Campaign `json:"campaigns"`
}

func decodeCollection(data []byte) (models.Collection, error) {
	var doc collectionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Collection{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if doc.Campaigns == nil {
		return models.Collection{}, fmt.Errorf("%w: missing campaigns field", ErrCorruptData)
	}
	return models.NewCollection(*doc.Campaigns), nil
}
