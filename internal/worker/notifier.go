package worker

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "staysboard/internal/kafka"
	mailerService "staysboard/internal/service/mailer"
	"staysboard/internal/store/actions"
)

// Notifier drains the listing-actions topic and emails the operations
// address for every block or rules change, so calendar writes never go
// unnoticed.
type Notifier struct {
	log        *zap.Logger
	mailer     *mailerService.MailerService
	c          *kafkax.Consumer
	dlq        *kafkax.Producer
	opsEmail   string
	maxWorkers int
}

func NewNotifier(log *zap.Logger, mailer *mailerService.MailerService, c *kafkax.Consumer, dlq *kafkax.Producer, opsEmail string, maxWorkers int) *Notifier {
	return &Notifier{
		log:        log,
		mailer:     mailer,
		c:          c,
		dlq:        dlq,
		opsEmail:   opsEmail,
		maxWorkers: maxWorkers,
	}
}

func (n *Notifier) Run(ctx context.Context) error {
	sem := make(chan struct{}, n.maxWorkers) // concurrency limit

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			m, err := n.c.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				n.log.Error("failed to read message", zap.Error(err))
				continue
			}

			sem <- struct{}{}
			go func(m kafka.Message) {
				defer func() { <-sem }()

				if err := n.handleMessage(m); err != nil {
					n.log.Error("failed to handle message", zap.Error(err))
					// Send to DLQ for manual inspection
					_ = n.dlq.Publish(ctx, m.Key, m.Value)
				} else {
					_ = n.c.Commit(ctx, m)
				}
			}(m)
		}
	}
}

func (n *Notifier) handleMessage(m kafka.Message) error {
	e, err := kafkax.ParseActionEvent(m.Value)
	if err != nil {
		return err
	}

	switch e.Type {
	case actions.KindBlockCreated:
		return n.mailer.SendBlockCreatedEmail(n.opsEmail, e.ListingID, e.StartDate, e.EndDate, e.Comment)
	case actions.KindRulesUpdated:
		return n.mailer.SendRulesUpdatedEmail(n.opsEmail, e.ListingID, e.Actor)
	default:
		n.log.Warn("unknown action event", zap.String("type", e.Type))
		return nil
	}
}
