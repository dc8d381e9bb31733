package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Adarsh-P-A/retrievo-backend/internal/blob"
	"github.com/Adarsh-P-A/retrievo-backend/internal/dto"
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/Adarsh-P-A/retrievo-backend/internal/validation"
	"github.com/Adarsh-P-A/retrievo-backend/internal/visibility"
)

type ProfileService struct {
	store    store.Store
	blobs    blob.Store
	validate *validation.Validator
}

func NewProfileService(st store.Store, blobs blob.Store, v *validation.Validator) *ProfileService {
	return &ProfileService{store: st, blobs: blobs, validate: v}
}

func (s *ProfileService) Me(user *models.User) dto.UserResponse {
	return UserResponse(user)
}

// MyItems returns every item of user, hidden ones included, split by kind.
func (s *ProfileService) MyItems(ctx context.Context, user *models.User) (*dto.MyItemsResponse, error) {
	items, err := s.store.Items().ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	views, err := itemViews(ctx, s.store.Resolutions(), s.blobs, items, visibility.ForUser(user))
	if err != nil {
		return nil, err
	}

	resp := &dto.MyItemsResponse{Lost: []dto.ItemResponse{}, Found: []dto.ItemResponse{}}
	for _, v := range views {
		if v.Type == string(models.KindLost) {
			resp.Lost = append(resp.Lost, v)
		} else {
			resp.Found = append(resp.Found, v)
		}
	}
	return resp, nil
}

func (s *ProfileService) SetHostel(ctx context.Context, user *models.User, req dto.SetHostelRequest) (*dto.UserResponse, error) {
	req.Hostel = strings.TrimSpace(req.Hostel)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.store.Users().SetHostel(ctx, user.ID, req.Hostel); err != nil {
		return nil, err
	}
	updated, err := s.store.Users().GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "hostel set", "user_id", user.ID.String(), "hostel", req.Hostel)
	resp := UserResponse(updated)
	return &resp, nil
}

// SetPhone stores the contact number once. A second attempt is a conflict.
func (s *ProfileService) SetPhone(ctx context.Context, user *models.User, req dto.SetPhoneRequest) (*dto.UserResponse, error) {
	req.Phone = validation.NormalizePhone(req.Phone)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.store.Users().SetPhoneIfEmpty(ctx, user.ID, req.Phone); err != nil {
		return nil, err
	}
	updated, err := s.store.Users().GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "phone set", "user_id", user.ID.String())
	resp := UserResponse(updated)
	return &resp, nil
}

// PublicProfile shows public fields of a user and the items v may see.
func (s *ProfileService) PublicProfile(ctx context.Context, v visibility.Viewer, publicID string) (*dto.PublicProfileResponse, error) {
	user, err := s.store.Users().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Items().ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	visible := items[:0]
	for i := range items {
		if visibility.Visible(&items[i], v) && !items[i].IsHidden {
			visible = append(visible, items[i])
		}
	}
	views, err := itemViews(ctx, s.store.Resolutions(), s.blobs, visible, v)
	if err != nil {
		return nil, err
	}
	return &dto.PublicProfileResponse{
		PublicID:  user.PublicID,
		Name:      user.Name,
		Image:     user.Image,
		Hostel:    user.Hostel,
		CreatedAt: user.CreatedAt,
		Items:     views,
	}, nil
}
