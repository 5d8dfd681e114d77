package services

import (
	"context"
	"time"

	"storefront-service/contact"
	"storefront-service/models"

	awspkg "storefront-service/pkg/aws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactService accepts contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, sub contact.Submission) (*models.Acknowledgement, error)
}

type contactServiceImpl struct {
	validator   *contact.Validator
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	metrics     awspkg.MetricsRecorder
	logger      *zap.Logger
	now         func() time.Time
}

// NewContactService creates a ContactService. Submissions are only logged
// when snsTopicArn is empty.
func NewContactService(
	validator *contact.Validator,
	snsClient awspkg.SNSPublisher,
	snsTopicArn string,
	metrics awspkg.MetricsRecorder,
	logger *zap.Logger,
) ContactService {
	return &contactServiceImpl{
		validator:   validator,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, sub contact.Submission) (*models.Acknowledgement, error) {
	sub = sub.Normalize()
	if fields := s.validator.Validate(sub); len(fields) > 0 {
		return nil, &FormError{Message: contact.FormErrorMessage, Fields: fields}
	}

	event := models.ContactEvent{
		Event:       models.EventContactSubmitted,
		ReferenceID: uuid.NewString(),
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Subject:     sub.Subject,
		Message:     sub.Message,
		Plan:        sub.Plan,
		Timestamp:   s.now().UTC(),
	}

	s.logger.Info("Contact form submitted",
		zap.String("reference_id", event.ReferenceID),
		zap.String("subject", event.Subject),
		zap.String("plan", event.Plan),
	)
	notify(ctx, s.snsClient, s.snsTopicArn, event, s.logger)
	countMetric(s.metrics, awspkg.MetricContactSubmissions, map[string]string{"Subject": event.Subject}, s.logger)

	return &models.Acknowledgement{
		ReferenceID: event.ReferenceID,
		Message:     "Thank you for your message! We'll get back to you as soon as possible.",
	}, nil
}

// notify publishes payload when a topic is configured. Failures are logged.
func notify(ctx context.Context, sns awspkg.SNSPublisher, topicArn string, payload any, logger *zap.Logger) {
	if sns == nil || topicArn == "" {
		return
	}
	if err := publishJSON(ctx, sns, topicArn, payload); err != nil {
		logger.Warn("Failed to publish notification", zap.String("topic", topicArn), zap.Error(err))
	}
}

func countMetric(metrics awspkg.MetricsRecorder, name string, dims map[string]string, logger *zap.Logger) {
	if metrics == nil || !metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.RecordCount(ctx, name, dims); err != nil {
			logger.Debug("Failed to record metric", zap.String("metric", name), zap.Error(err))
		}
	}()
}
