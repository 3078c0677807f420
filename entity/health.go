package entity

// HealthCheckResponse aggregates downstream liveness as seen by the gateway.
type HealthCheckResponse struct {
	Gateway bool `json:"gateway"`
	Flights bool `json:"flights"`
	Tickets bool `json:"tickets"`
	Bonuses bool `json:"bonuses"`
}
