package ports

import "context"

// Describer turns a plain-text rule dump into a prose summary. The OpenAI
// implementation lives in infrastructure; the describe command is the only
// consumer.
type Describer interface {
	Describe(ctx context.Context, dump string) (string, error)
}
