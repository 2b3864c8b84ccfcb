package slack

import (
	"context"

	"github.com/zary0/domainscout/internal/types"
)

// NotifyAnalysis posts the summary of a completed analysis
func (c *Client) NotifyAnalysis(ctx context.Context, a *types.Analysis) error {
	if a == nil {
		return ErrNilAnalysis
	}

	return c.Send(ctx, AnalysisMessage(a))
}
