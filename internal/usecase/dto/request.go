package dto

// LocationInput - начало или конец маршрута: адрес или координаты.
// Хотя бы одно из двух должно быть заполнено.
type LocationInput struct {
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon     *float64 `json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
}

// HasCoordinates сообщает, заданы ли обе координаты
func (l LocationInput) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// RoutePreferences - предпочтения генерации маршрута.
// Pointer-поля различают "не задано" (действует дефолт конфигурации)
// и явный ноль: nil бюджет означает дефолт, явный 0 - никакого прироста.
type RoutePreferences struct {
	MaxTimeIncreasePercent *float64 `json:"max_time_increase_percent,omitempty" validate:"omitempty,min=0,max=200"`
	Interests              []string `json:"interests,omitempty"`
	MinStops               *int     `json:"min_stops,omitempty" validate:"omitempty,min=0,max=20"`
	MaxStops               *int     `json:"max_stops,omitempty" validate:"omitempty,min=1,max=20"`
}

// GenerateRouteRequest - запрос на генерацию живописного маршрута
type GenerateRouteRequest struct {
	Start       LocationInput    `json:"start" validate:"required"`
	End         LocationInput    `json:"end" validate:"required"`
	Preferences RoutePreferences `json:"preferences"`
}

// ValidateLocationRequest - проверка "путешественник ещё на маршруте?"
type ValidateLocationRequest struct {
	EncodedPath     string  `json:"encoded_path" validate:"required"`
	Lat             float64 `json:"lat" validate:"min=-90,max=90"`
	Lon             float64 `json:"lon" validate:"min=-180,max=180"`
	ToleranceMeters float64 `json:"tolerance_meters" validate:"omitempty,min=1,max=10000"`
}
