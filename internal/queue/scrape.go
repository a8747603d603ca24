package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cinepedia/scraper/internal/storage"
	"github.com/cinepedia/scraper/pkg/common"
	"github.com/cinepedia/scraper/pkg/entity"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/scrape"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rabbitmq/amqp091-go"
)

// ProcessScrapeMessage fetches the page named in the message, archives the
// raw HTML and hands the page on to the resolve queue. Scraping and
// resolving are separate steps so a model outage never costs a fetched
// page.
func ProcessScrapeMessage(
	ctx context.Context,
	s3Client *s3.Client,
	loader *scrape.Loader,
	ch *amqp091.Channel,
	msgBody string,
) error {
	var msg PageMsg
	if err := json.Unmarshal([]byte(msgBody), &msg); err != nil {
		return fmt.Errorf("invalid scrape message: %w", err)
	}
	if msg.URL == "" {
		return fmt.Errorf("scrape message has no url")
	}

	uid, err := entity.DeriveEntityUID(common.BaseInfo{
		Title:      msg.Title,
		SourceID:   msg.SourceID,
		EntityType: msg.EntityType,
	})
	if err != nil {
		return err
	}

	logger.Info("Scraping page", "correlation_id", msg.CorrelationID, "url", msg.URL, "uid", uid)

	rawHTML, err := loader.Fetch(ctx, msg.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}

	if s3Client != nil {
		key, err := storage.ArchivePage(ctx, s3Client, uid, rawHTML)
		if err != nil {
			return err
		}
		logger.Debug("Archived page", "correlation_id", msg.CorrelationID, "key", key)
	}

	next, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return PublishFIFO(ch, ResolveQueue, next)
}
