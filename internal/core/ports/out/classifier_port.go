package out

import "context"

// ClassifierPort sends a prompt to the generative model and returns the raw generated text.
type ClassifierPort interface {
	Classify(ctx context.Context, prompt string) (string, error)
}
