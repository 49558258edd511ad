// Package model contains domain models passed between layers.
package model

// VerificationResult is the transient outcome of one answer check.
// Other holds up to four alternative valid answers, in candidate order.
type VerificationResult struct {
	Found bool     `json:"found"`
	Other []string `json:"other"`
}

// AnswerOutcome bundles what a round submission produced: the check
// result, the points awarded, and the session state after scoring.
type AnswerOutcome struct {
	Result  VerificationResult `json:"result"`
	Points  int                `json:"points"`
	Session *GameSession       `json:"session"`
}
