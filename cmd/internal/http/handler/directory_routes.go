package handler

import (
	"context"
	"net/http"

	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/geo"
	"eventmarket/cmd/internal/domain/policy"
	"eventmarket/cmd/internal/service"
	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type DirectoryService interface {
	AddBusiness(ctx context.Context, hostID string, req *contract.AddBusinessRequest) (*entity.BusinessDirectoryEntry, error)
	SearchByText(ctx context.Context, query string, filter service.TextSearch) ([]entity.BusinessDirectoryEntry, error)
	SearchByDistance(ctx context.Context, origin geo.Point, maxMiles float64, category string) ([]entity.BusinessMatch, error)
	GetBusiness(ctx context.Context, businessID string) (*entity.BusinessDirectoryEntry, error)
	ClaimBusiness(ctx context.Context, businessID, accountID string) (*entity.BusinessDirectoryEntry, error)
}

type DefaultDirectoryRoute struct {
	Directory DirectoryService
	Policy    *policy.PartyPolicy
}

func NewDirectoryDefault(directory DirectoryService, partyPolicy *policy.PartyPolicy) *DefaultDirectoryRoute {
	return &DefaultDirectoryRoute{Directory: directory, Policy: partyPolicy}
}

func (d *DefaultDirectoryRoute) AddBusiness(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := d.Policy.CanAddBusiness(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.AddBusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	business, err := d.Directory.AddBusiness(c.Request().Context(), actor.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toBusinessResponse(business))
}

// Search handles GET /api/directory?q=&location=&lat=&lng=&max_miles=
func (d *DefaultDirectoryRoute) Search(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := d.Policy.CanSearchDirectory(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	origin, apierr := optionalOrigin(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	maxMiles, apierr := optionalFloatQuery(c, "max_miles")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	filter := service.TextSearch{
		Location:         c.QueryParam("location"),
		Origin:           origin,
		MaxDistanceMiles: maxMiles,
	}

	businesses, err := d.Directory.SearchByText(c.Request().Context(), c.QueryParam("q"), filter)
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"businesses": toBusinessResponses(businesses)}
	return c.JSON(http.StatusOK, &resp)
}

// Nearby handles GET /api/directory/nearby?lat=&lng=&max_miles=&category=
func (d *DefaultDirectoryRoute) Nearby(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := d.Policy.CanSearchDirectory(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	origin, apierr := optionalOrigin(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	if origin == nil {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("lat"))
	}

	maxMiles, apierr := optionalFloatQuery(c, "max_miles")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	if maxMiles == nil {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("max_miles"))
	}

	matches, err := d.Directory.SearchByDistance(c.Request().Context(), *origin, *maxMiles, c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"businesses": toMatchResponses(matches)}
	return c.JSON(http.StatusOK, &resp)
}

func (d *DefaultDirectoryRoute) GetBusiness(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := d.Policy.CanSearchDirectory(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	id, apierr := requiredParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	business, err := d.Directory.GetBusiness(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBusinessResponse(business))
}

// Claim handles PUT /api/directory/:id/owner, linking the entry to the account
// that may answer its reverse proposals.
func (d *DefaultDirectoryRoute) Claim(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := d.Policy.CanClaimBusiness(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	id, apierr := requiredParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.ClaimBusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	business, err := d.Directory.ClaimBusiness(c.Request().Context(), id, req.AccountID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBusinessResponse(business))
}

// optionalOrigin reads lat/lng, which must come together.
func optionalOrigin(c echo.Context) (*geo.Point, apierror.ErrorResponse) {
	lat, apierr := optionalFloatQuery(c, "lat")
	if apierr != nil {
		return nil, apierr
	}
	lng, apierr := optionalFloatQuery(c, "lng")
	if apierr != nil {
		return nil, apierr
	}

	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil:
		return nil, apierror.NewMissingParamError("lat")
	case lng == nil:
		return nil, apierror.NewMissingParamError("lng")
	}
	return &geo.Point{Latitude: *lat, Longitude: *lng}, nil
}
