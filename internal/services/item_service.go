package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/blob"
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
	"github.com/Adarsh-P-A/retrievo-backend/internal/imageproc"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
	"github.com/google/uuid"
)

// ImageUpload is the raw image part of a create request.
type ImageUpload struct {
	Filename string
	Data     []byte
}

type ItemService struct {
	store         store.Store
	blobs         blob.Store
	validate      *validation.Validator
	filter        *ContentFilter
	maxImageBytes int64
}

func NewItemService(st store.Store, blobs blob.Store, v *validation.Validator, filter *ContentFilter, maxImageBytes int64) *ItemService {
	return &ItemService{
		store:         st,
		blobs:         blobs,
		validate:      v,
		filter:        filter,
		maxImageBytes: maxImageBytes,
	}
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errs.Invalid("date must be YYYY-MM-DD or RFC 3339")
}

func trimCreate(req *dto.CreateItemRequest) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.Location = strings.TrimSpace(req.Location)
	req.Type = strings.TrimSpace(req.Type)
	req.Visibility = strings.TrimSpace(req.Visibility)
}

// Create validates the posting, stores the processed image and inserts the
// item. The blob is removed again when the insert fails.
func (s *ItemService) Create(ctx context.Context, owner *models.User, req dto.CreateItemRequest, img *ImageUpload) (*dto.ItemResponse, error) {
	trimCreate(&req)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := s.filter.Screen(req.Title, req.Description, req.Location); err != nil {
		return nil, err
	}
	if img == nil || len(img.Data) == 0 {
		return nil, errs.ErrImageRequired
	}

	processed, err := imageproc.Process(img.Filename, img.Data, s.maxImageBytes)
	if err != nil {
		return nil, err
	}
	key, err := s.blobs.Put(ctx, processed, imageproc.OutputExt)
	if err != nil {
		return nil, errs.Unavailable("blob put", err)
	}

	item := &models.Item{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Kind:        models.ItemKind(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Date:        date,
		Image:       key,
		Visibility:  req.Visibility,
	}
	if err := s.store.Items().Create(ctx, item); err != nil {
		s.discardBlob(ctx, key)
		return nil, err
	}

	slog.InfoContext(ctx, "item created", "item_id", item.ID.String(), "user_id", owner.ID.String(), "kind", item.Kind)
	resp := itemResponse(ctx, s.blobs, item, models.ClaimNone, visibility.ForUser(owner))
	return &resp, nil
}

// Get returns the item when v may see it. Invisible and absent items are
// both ErrNotFound.
func (s *ItemService) Get(ctx context.Context, v visibility.Viewer, id uuid.UUID) (*dto.ItemResponse, error) {
	item, err := s.store.Items().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibility.Visible(item, v) {
		return nil, errs.ErrNotFound
	}

	status, err := activeClaimStatus(ctx, s.store.Resolutions(), item.ID)
	if err != nil {
		return nil, err
	}
	resp := itemResponse(ctx, s.blobs, item, status, v)
	return &resp, nil
}

// activeClaimStatus reports the claim state of a single item.
func activeClaimStatus(ctx context.Context, resolutions store.ResolutionRepository, itemID uuid.UUID) (models.ClaimStatus, error) {
	active, err := resolutions.Active(ctx, itemID)
	if errors.Is(err, errs.ErrNotFound) {
		return models.ClaimNone, nil
	}
	if err != nil {
		return "", err
	}
	return claimStatus(active.Status, true), nil
}

// List returns one page of non-hidden items listable by v, newest first.
func (s *ItemService) List(ctx context.Context, v visibility.Viewer, kind string, p Page) (*dto.ItemListResponse, error) {
	switch models.ItemKind(kind) {
	case "", models.KindLost, models.KindFound:
	default:
		return nil, errs.Invalid("type must be lost or found")
	}

	items, total, err := s.store.Items().List(ctx, store.ItemFilter{
		Viewer: v,
		Kind:   models.ItemKind(kind),
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	if err != nil {
		return nil, err
	}

	out, err := itemViews(ctx, s.store.Resolutions(), s.blobs, items, v)
	if err != nil {
		return nil, err
	}
	return &dto.ItemListResponse{
		Items:   out,
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasMore: p.HasMore(len(items), total),
	}, nil
}

// lockOwned loads the item for update and checks that actor owns it and no
// active claim holds it.
func lockOwned(ctx context.Context, tx store.Repos, actor *models.User, id uuid.UUID) (*models.Item, error) {
	item, err := tx.Items().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.OwnedBy(actor.ID) {
		if !visibility.Visible(item, visibility.ForUser(actor)) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrNotOwner
	}

	_, err = tx.Resolutions().Active(ctx, item.ID)
	switch {
	case err == nil:
		return nil, errs.ErrItemLocked
	case !errors.Is(err, errs.ErrNotFound):
		return nil, err
	}
	return item, nil
}

// Update applies the supplied fields. Claimed items are locked.
func (s *ItemService) Update(ctx context.Context, actor *models.User, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	for _, f := range []*string{req.Title, req.Description, req.Category, req.Location, req.Visibility, req.Date} {
		validation.TrimPtr(f)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var date *time.Time
	if req.Date != nil {
		d, err := ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		date = &d
	}

	var screened []string
	for _, f := range []*string{req.Title, req.Description, req.Location} {
		if f != nil {
			screened = append(screened, *f)
		}
	}
	if err := s.filter.Screen(screened...); err != nil {
		return nil, err
	}

	var item *models.Item
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		var err error
		item, err = lockOwned(ctx, tx, actor, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			item.Title = *req.Title
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if req.Location != nil {
			item.Location = *req.Location
		}
		if req.Visibility != nil {
			item.Visibility = *req.Visibility
		}
		if date != nil {
			item.Date = *date
		}
		return tx.Items().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "item updated", "item_id", item.ID.String(), "user_id", actor.ID.String())
	resp := itemResponse(ctx, s.blobs, item, models.ClaimNone, visibility.ForUser(actor))
	return &resp, nil
}

// Delete removes an unclaimed item owned by actor. The row goes first; the
// image is removed afterwards on a best-effort basis.
func (s *ItemService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	var key string
	err := s.store.InTx(ctx, func(tx store.Repos) error {
		item, err := lockOwned(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		key = item.Image
		return tx.Items().Delete(ctx, item.ID)
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "item deleted", "item_id", id.String(), "user_id", actor.ID.String())
	s.discardBlob(ctx, key)
	return nil
}

// discardBlob deletes an image without failing the caller. An orphaned blob
// is acceptable; a row pointing at a missing blob is not.
func (s *ItemService) discardBlob(ctx context.Context, key string) {
	discardBlob(ctx, s.blobs, key)
}

func discardBlob(ctx context.Context, blobs blob.Store, key string) {
	if key == "" {
		return
	}
	if err := blobs.Delete(context.WithoutCancel(ctx), key); err != nil {
		slog.WarnContext(ctx, "failed to delete image blob", "key", key, "error", err)
	}
}
