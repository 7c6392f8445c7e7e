package jwt

import "github.com/golang-jwt/jwt/v5"

// DecisionClaims bind an accept/decline decision button to one application.
// The token rides in the button's custom id, so the gateway can hand it back
// verbatim and the backend can trust what it refers to.
type DecisionClaims struct {
	jwt.RegisteredClaims
	ApplicationID string `json:"app_id"`
	QuestID       string `json:"quest_id"`
	ApplicantID   string `json:"applicant_id"`
}
