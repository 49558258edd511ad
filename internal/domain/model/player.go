// Package model contains domain models passed between layers.
package model

// Player is one roster member of a game session. Per-round fields are
// reset by the session engine when a round advances.
type Player struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	TotalScore         int    `json:"totalScore"`
	CurrentRoundScore  int    `json:"currentRoundScore"`
	CurrentRoundAnswer string `json:"currentRoundAnswer,omitempty"`
	HasSubmitted       bool   `json:"hasSubmitted"`
	Avatar             string `json:"avatar,omitempty"`
}
