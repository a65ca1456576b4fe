package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/daygrid/internal/holiday"
)

type ListHolidaysInput struct {
	Year    int    `query:"year" required:"true" minimum:"1" doc:"Calendar year"`
	Country string `query:"country" required:"true" minLength:"2" maxLength:"2" doc:"ISO 3166-1 alpha-2 country code"`
}

type ListHolidaysOutput struct {
	Body []holiday.Holiday
}

func RegisterHolidayRoutes(api huma.API, lookup HolidayLookup) {
	huma.Register(api, huma.Operation{
		OperationID: "list-holidays",
		Method:      http.MethodGet,
		Path:        "/holidays",
		Summary:     "List public holidays for a year and country",
		Tags:        []string{"Holidays"},
	}, func(ctx context.Context, input *ListHolidaysInput) (*ListHolidaysOutput, error) {
		holidays, err := lookup.Holidays(ctx, input.Year, input.Country)
		if err != nil {
			if errors.Is(err, holiday.ErrUpstream) {
				return nil, huma.Error502BadGateway("holiday provider unavailable", err)
			}
			return nil, huma.Error500InternalServerError("failed to fetch holidays", err)
		}

		if holidays == nil {
			holidays = []holiday.Holiday{}
		}
		return &ListHolidaysOutput{Body: holidays}, nil
	})
}
