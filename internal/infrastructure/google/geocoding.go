package google

import (
	"context"
	"fmt"
	"net/url"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location latLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode резолвит адрес в координаты
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	query := url.Values{}
	query.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "/maps/api/geocode/json", query, &resp); err != nil {
		return domain.Coordinate{}, errors.ErrUpstreamUnavailable.WithReason(err.Error())
	}

	switch resp.Status {
	case "OK":
		// Берём первый (наиболее релевантный) результат
	case "ZERO_RESULTS":
		return domain.Coordinate{}, errors.ErrLocationNotFound.WithDetails(map[string]interface{}{
			"address": address,
		})
	default:
		c.logger.Error("Geocoding API returned non-OK status",
			zap.String("status", resp.Status),
			zap.String("address", address))
		return domain.Coordinate{}, errors.ErrUpstreamUnavailable.WithReason(
			fmt.Sprintf("geocoding status %s", resp.Status))
	}

	if len(resp.Results) == 0 {
		return domain.Coordinate{}, errors.ErrLocationNotFound
	}

	loc := resp.Results[0].Geometry.Location
	c.logger.Debug("Address geocoded",
		zap.String("address", address),
		zap.Float64("lat", loc.Lat),
		zap.Float64("lon", loc.Lng))

	return domain.Coordinate{Lat: loc.Lat, Lon: loc.Lng}, nil
}
