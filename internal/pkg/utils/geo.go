package utils

import (
	"math"

	"github.com/scenic-route-service/internal/domain"
)

const (
	earthRadiusKm = 6371.0
	earthRadiusM  = earthRadiusKm * 1000
)

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// HaversineDistanceMeters - то же расстояние в метрах
func HaversineDistanceMeters(a, b domain.Coordinate) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// PathProjection - результат проекции точки на путь
type PathProjection struct {
	DistanceMeters float64
	NearestPoint   domain.Coordinate
	SegmentIndex   int
}

// DistanceToPath возвращает минимальное расстояние от точки до любого
// сегмента пути и ближайшую точку на пути. Точка проецируется на каждый
// сегмент (не только на вершины).
//
// Проекция планарная (equirectangular, с коррекцией cos(lat)), что для
// сегментов короче ~200 м на средних широтах даёт субметровую погрешность.
// Для пустого пути расстояние равно +Inf.
func DistanceToPath(p domain.Coordinate, path []domain.Coordinate) PathProjection {
	if len(path) == 0 {
		return PathProjection{DistanceMeters: math.Inf(1)}
	}
	if len(path) == 1 {
		return PathProjection{
			DistanceMeters: HaversineDistanceMeters(p, path[0]),
			NearestPoint:   path[0],
		}
	}

	best := PathProjection{DistanceMeters: math.Inf(1)}
	for i := 0; i < len(path)-1; i++ {
		nearest := projectOnSegment(p, path[i], path[i+1])
		d := HaversineDistanceMeters(p, nearest)
		if d < best.DistanceMeters {
			best = PathProjection{
				DistanceMeters: d,
				NearestPoint:   nearest,
				SegmentIndex:   i,
			}
		}
	}

	return best
}

// projectOnSegment проецирует точку p на сегмент [a, b] в локальной
// планарной системе координат и возвращает ближайшую точку сегмента
func projectOnSegment(p, a, b domain.Coordinate) domain.Coordinate {
	// Локальная метрика: градус долготы сжимается на cos(широты)
	latScale := math.Cos(((a.Lat + b.Lat) / 2) * math.Pi / 180)

	ax, ay := a.Lon*latScale, a.Lat
	bx, by := b.Lon*latScale, b.Lat
	px, py := p.Lon*latScale, p.Lat

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return a // вырожденный сегмент
	}

	t := ((px-ax)*dx + (py-ay)*dy) / segLenSq
	t = math.Max(0, math.Min(1, t))

	return domain.Coordinate{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}
}

// PathLengthMeters - сумма длин сегментов пути по большим кругам
func PathLengthMeters(path []domain.Coordinate) float64 {
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		total += HaversineDistanceMeters(path[i], path[i+1])
	}
	return total
}

// IsOnPath проверяет, находится ли точка в пределах tolerance метров
// от пути. Для валидных входов ошибка невозможна.
func IsOnPath(p domain.Coordinate, path []domain.Coordinate, toleranceMeters float64) (bool, PathProjection) {
	proj := DistanceToPath(p, path)
	return proj.DistanceMeters <= toleranceMeters, proj
}
