// Package narrator defines the boundary between the game and the external
// story-telling model: the request it receives, the structured response it
// must produce, and the error categories callers can act on.
package narrator

import (
	"context"
	"errors"

	"github.com/jwebster45206/quest-engine/pkg/prompts"
)

var (
	// ErrNotConfigured means the narrator has no credentials and cannot be called.
	ErrNotConfigured = errors.New("narrator is not configured")
	// ErrRateLimited means the provider refused the request for quota or rate reasons.
	ErrRateLimited = errors.New("narrator rate limited")
	// ErrInvalidResponse means the provider replied with something that fails the schema.
	ErrInvalidResponse = errors.New("invalid narrator response")
)

// Narrator resolves one player action into a structured outcome.
type Narrator interface {
	Narrate(ctx context.Context, req *Request) (*Response, error)
}

// Request is everything a narrator needs for one turn.
type Request struct {
	Action    string           `json:"action"`
	Context   *prompts.Context `json:"context"`
	Directive string           `json:"directive"`
}

// Builder returns a prompt builder loaded with the request. withFormat
// appends the JSON field list for providers without native structured output.
func (r *Request) Builder(withFormat bool) *prompts.Builder {
	return prompts.New().
		WithDirective(r.Directive).
		WithContext(r.Context).
		WithAction(r.Action).
		WithResponseFormat(withFormat)
}
