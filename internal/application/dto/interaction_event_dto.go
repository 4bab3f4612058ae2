package dto

import "time"

// InteractionEventDTO - событие выполнения правила, публикуется в брокер
type InteractionEventDTO struct {
	ID         string     `json:"id"`
	Rule       string     `json:"rule"`
	Trigger    string     `json:"trigger"`
	Target     string     `json:"target"`
	Site       string     `json:"site"`
	Range      [2]float64 `json:"range"`
	Points     int        `json:"points"`
	Empty      bool       `json:"empty"`
	Error      string     `json:"error,omitempty"`
	DurationMs float64    `json:"duration_ms"`
	OccurredAt time.Time  `json:"occurred_at"`
}
