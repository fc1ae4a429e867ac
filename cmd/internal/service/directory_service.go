package service

import (
	"context"
	"slices"
	"strings"

	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/geo"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// TextSearch narrows a text search. Zero values disable a filter.
type TextSearch struct {
	// Location matches location, zip code, state or city.
	Location string

	// Both must be set for the distance filter to apply.
	Origin           *geo.Point
	MaxDistanceMiles *float64
}

type DefaultDirectoryService struct {
	Businesses *recordstore.Collection[entity.BusinessDirectoryEntry]
	Validate   *validator.Validate
	Clock      Clock
	NewID      IDGenerator
}

func NewDirectoryService(
	businesses *recordstore.Collection[entity.BusinessDirectoryEntry],
	validate *validator.Validate,
) *DefaultDirectoryService {
	return &DefaultDirectoryService{
		Businesses: businesses,
		Validate:   validate,
		Clock:      systemClock,
		NewID:      newUUID,
	}
}

// AddBusiness stores a new directory entry on behalf of a host.
// Entries are unique by email, or by name and location together, ignoring case.
func (d *DefaultDirectoryService) AddBusiness(ctx context.Context, hostID string, req *contract.AddBusinessRequest) (*entity.BusinessDirectoryEntry, error) {
	if err := validateRequest(d.Validate, req); err != nil {
		return nil, err
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, apierror.InvalidArgument("latitude", "latitude and longitude must be given together")
	}

	id, err := d.NewID()
	if err != nil {
		log.Errorf("failed to generate business id: %v", err)
		return nil, err
	}

	entry := entity.BusinessDirectoryEntry{
		ID:            id,
		Name:          req.Name,
		OwnerName:     req.OwnerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Category:      req.Category,
		Description:   req.Description,
		Website:       utils.OptionalString(utils.Deref(req.Website)),
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ZipCode:       utils.OptionalString(utils.Deref(req.ZipCode)),
		State:         utils.OptionalString(utils.Deref(req.State)),
		City:          utils.OptionalString(utils.Deref(req.City)),
		IsVerified:    req.IsVerified,
		IsOnPlatform:  req.IsOnPlatform,
		AddedByHostID: hostID,
		CreatedAt:     d.Clock(),
	}

	err = d.Businesses.Update(ctx, func(records []entity.BusinessDirectoryEntry) ([]entity.BusinessDirectoryEntry, error) {
		for i := range records {
			if dup := duplicateField(&records[i], &entry); dup != "" {
				value := entry.Email
				if dup != "email" {
					value = entry.Name
				}
				return nil, apierror.DuplicateEntry(dup, value)
			}
		}
		return append(records, entry), nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// duplicateField names the field on which two entries collide, or "" when they don't.
func duplicateField(existing, candidate *entity.BusinessDirectoryEntry) string {
	if candidate.Email != "" && utils.EqualFold(existing.Email, candidate.Email) {
		return "email"
	}
	if utils.EqualFold(existing.Name, candidate.Name) && utils.EqualFold(existing.Location, candidate.Location) {
		return "name_location"
	}
	return ""
}

// SearchByText returns the entries whose name, owner name, category or description contain query,
// in storage order. An empty query matches every entry.
func (d *DefaultDirectoryService) SearchByText(ctx context.Context, query string, filter TextSearch) ([]entity.BusinessDirectoryEntry, error) {
	records, err := d.Businesses.View(ctx)
	if err != nil {
		return nil, err
	}

	byDistance := filter.Origin != nil && filter.MaxDistanceMiles != nil

	out := make([]entity.BusinessDirectoryEntry, 0)
	for i := range records {
		b := &records[i]

		if !utils.ContainsFold(query, b.Name, b.OwnerName, b.Category, b.Description) {
			continue
		}

		if filter.Location != "" &&
			!utils.ContainsFold(filter.Location, b.Location, utils.Deref(b.ZipCode), utils.Deref(b.State), utils.Deref(b.City)) {
			continue
		}

		if byDistance {
			point, ok := b.Coordinates()
			if !ok || geo.DistanceMiles(*filter.Origin, point) > *filter.MaxDistanceMiles {
				continue
			}
		}

		out = append(out, *b)
	}
	return out, nil
}

// SearchByDistance returns the entries with coordinates within maxMiles of origin,
// nearest first. A non-empty category must occur in the entry category, ignoring case.
func (d *DefaultDirectoryService) SearchByDistance(ctx context.Context, origin geo.Point, maxMiles float64, category string) ([]entity.BusinessMatch, error) {
	records, err := d.Businesses.View(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.BusinessMatch, 0)
	for i := range records {
		b := records[i]

		point, ok := b.Coordinates()
		if !ok {
			continue
		}

		if category != "" && !utils.ContainsFold(category, b.Category) {
			continue
		}

		distance := geo.DistanceMiles(origin, point)
		if distance > maxMiles {
			continue
		}
		out = append(out, entity.BusinessMatch{Business: b, DistanceMiles: distance})
	}

	slices.SortStableFunc(out, func(a, b entity.BusinessMatch) int {
		switch {
		case a.DistanceMiles < b.DistanceMiles:
			return -1
		case a.DistanceMiles > b.DistanceMiles:
			return 1
		}
		return 0
	})
	return out, nil
}

func (d *DefaultDirectoryService) IncrementInvitationCount(ctx context.Context, businessID string) error {
	return d.increment(ctx, businessID, func(b *entity.BusinessDirectoryEntry) {
		b.InvitationsSent++
	})
}

func (d *DefaultDirectoryService) IncrementConversionCount(ctx context.Context, businessID string) error {
	return d.increment(ctx, businessID, func(b *entity.BusinessDirectoryEntry) {
		b.SignupConversions++
	})
}

func (d *DefaultDirectoryService) increment(ctx context.Context, businessID string, bump func(*entity.BusinessDirectoryEntry)) error {
	return d.Businesses.Update(ctx, func(records []entity.BusinessDirectoryEntry) ([]entity.BusinessDirectoryEntry, error) {
		i := indexOf(records, func(b *entity.BusinessDirectoryEntry) bool { return b.ID == businessID })
		if i < 0 {
			return nil, apierror.NotFound("business", businessID)
		}
		bump(&records[i])
		return records, nil
	})
}

// ClaimBusiness links the entry to the account that answers for it and marks it on platform.
// Claiming again for the same account is a no-op; another account gets AlreadyConnected.
func (d *DefaultDirectoryService) ClaimBusiness(ctx context.Context, businessID, accountID string) (*entity.BusinessDirectoryEntry, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, apierror.InvalidArgument("account_id", "account id is required")
	}

	var claimed entity.BusinessDirectoryEntry
	err := d.Businesses.Update(ctx, func(records []entity.BusinessDirectoryEntry) ([]entity.BusinessDirectoryEntry, error) {
		i := indexOf(records, func(b *entity.BusinessDirectoryEntry) bool { return b.ID == businessID })
		if i < 0 {
			return nil, apierror.NotFound("business", businessID)
		}

		b := &records[i]
		if b.OwnerAccountID != "" && b.OwnerAccountID != accountID {
			return nil, apierror.BusinessClaimed(businessID, b.OwnerAccountID)
		}

		b.OwnerAccountID = accountID
		b.IsOnPlatform = true
		claimed = *b
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("business %s claimed by account %s", businessID, accountID)
	return &claimed, nil
}

func (d *DefaultDirectoryService) GetBusiness(ctx context.Context, businessID string) (*entity.BusinessDirectoryEntry, error) {
	records, err := d.Businesses.View(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(records, func(b *entity.BusinessDirectoryEntry) bool { return b.ID == businessID })
	if i < 0 {
		return nil, apierror.NotFound("business", businessID)
	}
	return &records[i], nil
}

func (d *DefaultDirectoryService) ListBusinesses(ctx context.Context) ([]entity.BusinessDirectoryEntry, error) {
	return d.Businesses.View(ctx)
}
