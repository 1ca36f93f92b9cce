package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stream names (публикует владелец справочника аэропортов)
const (
	StreamAirportsChanged = "stream:airports:changed"
)

// AirportsChangedEvent - справочник аэропортов или городов изменился.
// Пустые ISOCountry и Codes означают изменение всего справочника.
type AirportsChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	ISOCountry string    `json:"iso_country,omitempty"`
	Codes      []string  `json:"codes,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

// NewAirportsChangedEvent создаёт событие с новым идентификатором
func NewAirportsChangedEvent(isoCountry string, codes ...string) AirportsChangedEvent {
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			normalized = append(normalized, c)
		}
	}
	return AirportsChangedEvent{
		EventID:    uuid.New(),
		ISOCountry: strings.ToUpper(strings.TrimSpace(isoCountry)),
		Codes:      normalized,
		ChangedAt:  time.Now().UTC(),
	}
}

// IsGlobal - событие затрагивает весь справочник
func (e AirportsChangedEvent) IsGlobal() bool {
	return e.ISOCountry == "" && len(e.Codes) == 0
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
