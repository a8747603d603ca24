package queue

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// PageMsg is the unit of work of the pipeline: one encyclopedia page to
// scrape and resolve. The correlation id ties the log lines of a page's
// journey through both queues together.
type PageMsg struct {
	CorrelationID string `json:"correlation_id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	SourceID      string `json:"source_id"`
	EntityType    string `json:"entity_type"`
}

// NewPageMsg builds a message with a fresh correlation id.
func NewPageMsg(url, title, sourceID, entityType string) PageMsg {
	id, err := gonanoid.New()
	if err != nil {
		id = "unknown"
	}
	return PageMsg{
		CorrelationID: id,
		URL:           url,
		Title:         title,
		SourceID:      sourceID,
		EntityType:    entityType,
	}
}
