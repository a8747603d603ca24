package extract

import (
	"context"
	"fmt"

	"github.com/cinepedia/scraper/internal/util"
	"github.com/cinepedia/scraper/pkg/ai"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
)

const extractRetries = 3

// Extractor pulls one kind of scored entity component out of a section of
// page text. An extractor may return several results (a cast section yields
// one result per actor) or none at all.
type Extractor interface {
	// Kind is the component kind this extractor produces.
	Kind() string
	// ResolveAs names the broader component kind the results should be
	// folded into, or "" when they route under their own kind.
	ResolveAs() string

	Extract(
		ctx context.Context,
		section *common.Section,
		base common.BaseInfo,
	) ([]entity.ExtractionResult, error)
}

// generate runs a schema-constrained completion with retries. Model calls
// are the flakiest part of the pipeline, so every extractor goes through
// here instead of calling the client directly.
func generate(
	ctx context.Context,
	client ai.Client,
	name string,
	description string,
	prompt string,
	out any,
) error {
	err := util.RetryErrWithContext(ctx, extractRetries, func(ctx context.Context) error {
		return client.GenerateCompletionWithFormat(ctx, name, description, prompt, out)
	})
	if err != nil {
		return fmt.Errorf("extraction %q failed: %w", name, err)
	}
	return nil
}
