package providers

import "context"

// AlertComposer is the external text-generation service that turns a
// structured interaction context into a plain-language alert.
type AlertComposer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
