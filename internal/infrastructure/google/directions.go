package google

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/pkg/errors"
	"github.com/scenic-route-service/internal/pkg/polyline"
	"go.uber.org/zap"
)

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance valueField `json:"distance"`
			Duration valueField `json:"duration"`
			Steps    []struct {
				HTMLInstructions string     `json:"html_instructions"`
				Distance         valueField `json:"distance"`
				Duration         valueField `json:"duration"`
				StartLocation    latLng     `json:"start_location"`
				EndLocation      latLng     `json:"end_location"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type valueField struct {
	Value float64 `json:"value"`
}

// GetDirections строит маршрут через waypoints в переданном порядке
func (c *Client) GetDirections(
	ctx context.Context,
	origin, destination domain.Coordinate,
	waypoints []domain.Coordinate,
) (*domain.DirectionsResult, error) {
	query := url.Values{}
	query.Set("origin", latLngParam(origin.Lat, origin.Lon))
	query.Set("destination", latLngParam(destination.Lat, destination.Lon))
	query.Set("mode", "driving")

	if len(waypoints) > 0 {
		parts := make([]string, len(waypoints))
		for i, wp := range waypoints {
			parts[i] = latLngParam(wp.Lat, wp.Lon)
		}
		query.Set("waypoints", strings.Join(parts, "|"))
	}

	var resp directionsResponse
	if err := c.get(ctx, "/maps/api/directions/json", query, &resp); err != nil {
		return nil, errors.ErrUpstreamUnavailable.WithReason(err.Error())
	}

	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, errors.ErrNoViableRoute
	default:
		c.logger.Error("Directions API returned non-OK status",
			zap.String("status", resp.Status))
		return nil, errors.ErrUpstreamUnavailable.WithReason(
			fmt.Sprintf("directions status %s", resp.Status))
	}

	if len(resp.Routes) == 0 {
		return nil, errors.ErrNoViableRoute
	}

	route := resp.Routes[0]
	points, err := polyline.Decode(route.OverviewPolyline.Points)
	if err != nil {
		// Битая polyline от провайдера - не пустой путь, а явная ошибка
		return nil, errors.ErrDecodeFailed.WithReason(err.Error())
	}

	result := &domain.DirectionsResult{
		Path: domain.Path{
			Points:          points,
			EncodedPolyline: route.OverviewPolyline.Points,
		},
	}

	for _, leg := range route.Legs {
		result.Path.DistanceMeters += leg.Distance.Value
		result.Path.DurationSeconds += leg.Duration.Value
		for _, step := range leg.Steps {
			result.Steps = append(result.Steps, domain.TurnStep{
				Instruction:     step.HTMLInstructions,
				DistanceMeters:  step.Distance.Value,
				DurationSeconds: step.Duration.Value,
				StartPoint:      domain.Coordinate{Lat: step.StartLocation.Lat, Lon: step.StartLocation.Lng},
				EndPoint:        domain.Coordinate{Lat: step.EndLocation.Lat, Lon: step.EndLocation.Lng},
			})
		}
	}

	c.logger.Debug("Directions received",
		zap.Int("points", len(result.Path.Points)),
		zap.Int("waypoints", len(waypoints)),
		zap.Float64("duration_seconds", result.Path.DurationSeconds))

	return result, nil
}
