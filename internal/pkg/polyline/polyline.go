package polyline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/scenic-route-service/internal/domain"
)

// precision - стандартная точность Google Encoded Polyline (1e-5 градуса)
const precision = 1e5

// ErrTruncated возвращается, когда входная строка обрывается посреди
// varint-последовательности. Никогда не поглощается в пустой путь.
var ErrTruncated = errors.New("polyline: input truncated mid-delta")

// Decode разбирает encoded polyline в последовательность координат.
// Пустая строка - валидный пустой путь, не ошибка.
func Decode(encoded string) ([]domain.Coordinate, error) {
	points := make([]domain.Coordinate, 0, len(encoded)/4)
	index := 0
	lat, lon := 0, 0

	for index < len(encoded) {
		dLat, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, fmt.Errorf("latitude delta at byte %d: %w", index, err)
		}
		index = next
		lat += dLat

		dLon, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, fmt.Errorf("longitude delta at byte %d: %w", index, err)
		}
		index = next
		lon += dLon

		points = append(points, domain.Coordinate{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
	}

	return points, nil
}

// decodeDelta читает один zigzag-закодированный varint начиная с index.
// Возвращает дельту и позицию следующего байта.
func decodeDelta(encoded string, index int) (int, int, error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, ErrTruncated
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode - обратная операция к Decode: decode(encode(p)) == p
// для любых точек на сетке 1e-5
func Encode(points []domain.Coordinate) string {
	var sb strings.Builder
	prevLat, prevLon := 0, 0

	for _, p := range points {
		lat := int(math.Round(p.Lat * precision))
		lon := int(math.Round(p.Lon * precision))

		encodeDelta(&sb, lat-prevLat)
		encodeDelta(&sb, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return sb.String()
}

func encodeDelta(sb *strings.Builder, delta int) {
	// zigzag: знак уходит в младший бит
	value := delta << 1
	if delta < 0 {
		value = ^value
	}

	for value >= 0x20 {
		sb.WriteByte(byte((0x20 | (value & 0x1f)) + 63))
		value >>= 5
	}
	sb.WriteByte(byte(value + 63))
}
