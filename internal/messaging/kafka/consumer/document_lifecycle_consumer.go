package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrdocs/internal/events"
	"go-hrdocs/internal/mailer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeDocumentLifecycle turns document state changes into employee
// emails. Email failure leaves the message uncommitted so delivery is
// retried; decode failures are committed and dropped.
func ConsumeDocumentLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	m mailer.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.document_lifecycle")
	log.Info("document lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("document lifecycle consumer stopped")
				return
			}
			log.Error("fetch document lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.DocumentLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode document lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject, body := renderDocumentMail(event)
		if err := m.Send(ctx, event.EmployeeEmail, subject, body); err != nil {
			log.Error("send document lifecycle mail failed",
				zap.String("document_id", event.DocumentID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit document lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("document lifecycle mail sent",
			zap.String("document_id", event.DocumentID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("status", event.Status),
		)
	}
}

func renderDocumentMail(event events.DocumentLifecycleEvent) (subject, body string) {
	subject = fmt.Sprintf("Document %q is now %s", event.DocumentName, event.Status)
	body = fmt.Sprintf("Hello,\n\nYour document %q has moved to status %s.", event.DocumentName, event.Status)
	if event.Remarks != "" {
		body += "\nReviewer remarks: " + event.Remarks
	}
	body += "\n\nHR Records"
	return subject, body
}
