// Package docs Airport Locator API.
//
// Сервис поиска ближайших аэропортов. Принимает свободный запрос
// (координаты "lat,lon", IATA код или название города), разрешает его в точку
// и возвращает ближайшие активные аэропорты с расстоянием в км или милях.
//
// Основные возможности:
// - Разрешение запроса в координату с кешированием
// - Поиск ближайших аэропортов с фильтром по стране
// - Расстояние между двумя точками по сфере и по эллипсоиду WGS-84
// - Сброс кеша поиска по префиксу (вручную и по событиям справочника)
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

//go:generate swag init -d .. -g cmd/api/main.go -o swagger --parseInternal
