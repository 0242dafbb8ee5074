// Package notify delivers budget alerts, either to a RabbitMQ exchange or to
// the application log when no broker is configured.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Publisher delivers budget alerts.
type Publisher interface {
	PublishBudgetAlert(ctx context.Context, alert *BudgetAlert) error
	Close() error
}

// LogPublisher writes alerts to the log.
type LogPublisher struct {
	log *zap.SugaredLogger
}

// NewLogPublisher creates a publisher that logs through log.
func NewLogPublisher(log *zap.SugaredLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

// PublishBudgetAlert logs the alert.
func (p *LogPublisher) PublishBudgetAlert(_ context.Context, alert *BudgetAlert) error {
	p.log.Warnw("budget alert",
		"budget_id", alert.BudgetID,
		"name", alert.Name,
		"category", alert.Category,
		"amount", alert.Amount.String(),
		"spent", alert.Spent.String(),
		"percentage", alert.Percentage,
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }
