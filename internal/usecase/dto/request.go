package dto

// SearchRequest - поиск ближайших аэропортов по свободному запросу
type SearchRequest struct {
	Query       string   `query:"query" json:"query" validate:"required,max=200"`
	ISOCountry  string   `query:"isoCountry" json:"isoCountry,omitempty" validate:"omitempty,len=2,alpha"`
	Unit        string   `query:"unit" json:"unit,omitempty" validate:"omitempty,oneof=km mi KM MI Km Mi"`
	Limit       *int     `query:"limit" json:"limit,omitempty"` // nil - по умолчанию, вне [1,10] приводится к границам
	RouteFactor *float64 `query:"routeFactor" json:"routeFactor,omitempty" validate:"omitempty,min=0.5,max=3"`
}

// ResolveRequest - разрешение запроса в координату
type ResolveRequest struct {
	Query      string `query:"query" json:"query" validate:"required,max=200"`
	ISOCountry string `query:"isoCountry" json:"isoCountry,omitempty" validate:"omitempty,len=2,alpha"`
}

// DistanceRequest - расстояние между двумя запросами
type DistanceRequest struct {
	From        string   `query:"from" json:"from" validate:"required,max=200"`
	To          string   `query:"to" json:"to" validate:"required,max=200"`
	ISOCountry  string   `query:"isoCountry" json:"isoCountry,omitempty" validate:"omitempty,len=2,alpha"`
	Unit        string   `query:"unit" json:"unit,omitempty" validate:"omitempty,oneof=km mi KM MI Km Mi"`
	RouteFactor *float64 `query:"routeFactor" json:"routeFactor,omitempty" validate:"omitempty,min=0.5,max=3"`
}

// InvalidateCacheRequest - удаление ключей кеша по префиксу
type InvalidateCacheRequest struct {
	Prefix string `json:"prefix" validate:"required,startswith=search:"`
}
