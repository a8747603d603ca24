package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cinepedia/scraper/internal/storage"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/resolver"
	"github.com/cinepedia/scraper/pkg/scrape"
	"github.com/cinepedia/scraper/pkg/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Resolvers maps an entity type to the resolver that handles its pages.
type Resolvers map[string]resolver.Resolver

// ProcessResolveMessage loads the archived page, splits it into sections
// and runs the resolver for the message's entity type. The composed
// entity ends up in storage.
//
// A page that resolves to nothing, because no configured section matched
// or no extractor produced a result, is dropped with a warning rather
// than retried: the page content will not change on a retry and the
// extractors already retry transient model failures themselves.
func ProcessResolveMessage(
	ctx context.Context,
	s3Client *s3.Client,
	loader *scrape.Loader,
	resolvers Resolvers,
	entityStore store.EntityStorage,
	msgBody string,
) error {
	var msg PageMsg
	if err := json.Unmarshal([]byte(msgBody), &msg); err != nil {
		return fmt.Errorf("invalid resolve message: %w", err)
	}

	res, ok := resolvers[msg.EntityType]
	if !ok {
		return fmt.Errorf("no resolver for entity type %q", msg.EntityType)
	}

	base := common.BaseInfo{
		Title:      msg.Title,
		Permalink:  msg.URL,
		SourceID:   msg.SourceID,
		EntityType: msg.EntityType,
	}

	uid, err := entity.DeriveEntityUID(base)
	if err != nil {
		return err
	}

	rawHTML, err := loadPage(ctx, s3Client, loader, uid, msg.URL)
	if err != nil {
		return err
	}

	sections, err := scrape.SplitSections(rawHTML)
	if err != nil {
		return fmt.Errorf("failed to split page: %w", err)
	}
	if len(sections) == 0 {
		// Pages without heading structure still carry prose. Feed the
		// readable article text to the extractors as one orphan section.
		text, rErr := scrape.PageText(rawHTML, msg.URL)
		if rErr == nil && len(text) > 0 {
			sections = []*common.Section{{
				Title:   common.OrphanSectionTitle,
				Content: string(text),
			}}
		}
	}

	logger.Info(
		"Resolving page",
		"correlation_id", msg.CorrelationID,
		"uid", uid,
		"type", msg.EntityType,
		"sections", len(sections),
	)

	resolved, err := res.Resolve(ctx, base, sections)
	if err != nil {
		if errors.Is(err, resolver.ErrNoSections) || errors.Is(err, resolver.ErrNoParts) {
			logger.Warn(
				"Page yielded no entity, dropping message",
				"correlation_id", msg.CorrelationID,
				"uid", uid,
				"reason", err,
			)
			return nil
		}
		return err
	}

	record, err := recordFor(resolved)
	if err != nil {
		return err
	}
	if err := entityStore.SaveEntity(ctx, record); err != nil {
		return fmt.Errorf("failed to store entity: %w", err)
	}

	logger.Info("Stored entity", "correlation_id", msg.CorrelationID, "uid", record.UID)
	return nil
}

// loadPage prefers the S3 archive and falls back to a live fetch when the
// archive is unavailable.
func loadPage(
	ctx context.Context,
	s3Client *s3.Client,
	loader *scrape.Loader,
	uid string,
	url string,
) ([]byte, error) {
	if s3Client != nil {
		rawHTML, err := storage.GetArchivedPage(ctx, s3Client, uid)
		if err == nil {
			return rawHTML, nil
		}
		logger.Warn("Archived page unavailable, fetching live", "uid", uid, "err", err)
	}
	return loader.Fetch(ctx, url)
}

func recordFor(resolved any) (store.EntityRecord, error) {
	switch e := resolved.(type) {
	case *entity.Movie:
		return store.Record(e.UID, e.Type, e.Title, e.Permalink, e)
	case *entity.Person:
		return store.Record(e.UID, e.Type, e.Title, e.Permalink, e)
	default:
		return store.EntityRecord{}, fmt.Errorf("unsupported entity type %T", resolved)
	}
}
