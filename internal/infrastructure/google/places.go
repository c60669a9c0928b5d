package google

import (
	"context"
	"fmt"
	"net/url"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Geometry struct {
			Location latLng `json:"location"`
		} `json:"geometry"`
		Types            []string `json:"types"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
	} `json:"results"`
}

// GetNearby ищет POI в радиусе от центра. Nearby Search принимает один
// type на запрос, поэтому категории запрашиваются по очереди, а дубли
// по place_id схлопываются внутри одного вызова.
func (c *Client) GetNearby(
	ctx context.Context,
	center domain.Coordinate,
	radiusMeters float64,
	categories []string,
) ([]domain.CandidatePOI, error) {
	if len(categories) == 0 {
		categories = domain.DefaultPOICategories()
	}

	seen := make(map[string]struct{})
	candidates := make([]domain.CandidatePOI, 0, 20)

	for _, category := range categories {
		query := url.Values{}
		query.Set("location", latLngParam(center.Lat, center.Lon))
		query.Set("radius", fmt.Sprintf("%.0f", radiusMeters))
		query.Set("type", category)

		var resp nearbyResponse
		if err := c.get(ctx, "/maps/api/place/nearbysearch/json", query, &resp); err != nil {
			return nil, errors.ErrUpstreamUnavailable.WithReason(err.Error())
		}

		switch resp.Status {
		case "OK":
		case "ZERO_RESULTS":
			continue // пустой результат для категории - не ошибка
		default:
			c.logger.Error("Places API returned non-OK status",
				zap.String("status", resp.Status),
				zap.String("category", category))
			return nil, errors.ErrUpstreamUnavailable.WithReason(
				fmt.Sprintf("places status %s", resp.Status))
		}

		for _, r := range resp.Results {
			if _, ok := seen[r.PlaceID]; ok {
				continue
			}
			seen[r.PlaceID] = struct{}{}

			candidates = append(candidates, domain.CandidatePOI{
				PlaceID:     r.PlaceID,
				Name:        r.Name,
				Location:    domain.Coordinate{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng},
				Category:    pickCategory(r.Types, category),
				Rating:      r.Rating,
				ReviewCount: r.UserRatingsTotal,
			})
		}
	}

	c.logger.Debug("Nearby search finished",
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// pickCategory выбирает первую известную нам категорию из types ответа,
// иначе возвращает категорию запроса
func pickCategory(types []string, requested string) string {
	known := map[string]struct{}{
		domain.CategoryTouristAttraction: {},
		domain.CategoryMuseum:            {},
		domain.CategoryHistoricalSite:    {},
		domain.CategoryLandmark:          {},
		domain.CategoryPark:              {},
		domain.CategoryRestaurant:        {},
		domain.CategoryNaturalFeature:    {},
	}

	for _, t := range types {
		if _, ok := known[t]; ok {
			return t
		}
	}
	return requested
}
