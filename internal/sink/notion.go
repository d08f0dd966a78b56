package sink

import (
	"context"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/model"
	"github.com/sells-group/leadflow/pkg/notion"
)

// Notion stores leads as pages of a Notion database. Row order is page
// creation order, with row FirstDataRow mapping to the oldest page.
type Notion struct {
	client notion.Client
	dbID   string
}

// NewNotion returns a Notion sink for the given database.
func NewNotion(client notion.Client, dbID string) *Notion {
	return &Notion{client: client, dbID: dbID}
}

// Append implements Sink.
func (s *Notion) Append(ctx context.Context, lead model.Lead) error {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.dbID),
		},
		Properties: notion.LeadProperties(lead.Name, lead.Email, lead.Industry, lead.Status, lead.Score),
	}
	page, err := s.client.CreatePage(ctx, req)
	if err != nil {
		return apperr.NewExternalServiceError("notion", "append row", err)
	}
	zap.L().Debug("sink: created page",
		zap.String("component", "sink.notion"),
		zap.String("page_id", string(page.ID)),
	)
	return nil
}

// Statuses implements Sink.
func (s *Notion) Statuses(ctx context.Context, n int) ([]string, error) {
	statuses := make([]string, n)
	if n == 0 {
		return statuses, nil
	}

	pages, err := notion.QueryInCreationOrder(ctx, s.client, s.dbID)
	if err != nil {
		return nil, apperr.NewExternalServiceError("notion", "read status", err)
	}

	for i := 0; i < n && i < len(pages); i++ {
		statuses[i] = notion.PageStatus(pages[i])
	}
	return statuses, nil
}
