package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-service/booking"
	"storefront-service/models"

	awspkg "storefront-service/pkg/aws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCalendarMonth is returned for a month outside 1..12 or an
// unparsable selected date.
var ErrInvalidCalendarMonth = errors.New("invalid calendar month")

// BookingService serves the booking calendar and confirms bookings.
type BookingService interface {
	Calendar(year, month int, selected string) (*models.CalendarView, error)
	Book(ctx context.Context, req booking.Request) (*models.Acknowledgement, error)
}

type bookingServiceImpl struct {
	validator   *booking.Validator
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	metrics     awspkg.MetricsRecorder
	logger      *zap.Logger
}

func NewBookingService(
	validator *booking.Validator,
	snsClient awspkg.SNSPublisher,
	snsTopicArn string,
	metrics awspkg.MetricsRecorder,
	logger *zap.Logger,
) BookingService {
	return &bookingServiceImpl{
		validator:   validator,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		metrics:     metrics,
		logger:      logger,
	}
}

// Calendar lays out the given month. Zero year or month mean the current one.
func (s *bookingServiceImpl) Calendar(year, month int, selected string) (*models.CalendarView, error) {
	today := s.validator.Today()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidCalendarMonth, year, month)
	}

	var sel *time.Time
	if selected != "" {
		d, err := time.ParseInLocation(booking.DateLayout, selected, today.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: selected date %q", ErrInvalidCalendarMonth, selected)
		}
		sel = &d
	}

	return &models.CalendarView{
		Month:     booking.MonthGrid(year, time.Month(month), today, sel),
		TimeSlots: append([]string(nil), booking.TimeSlots...),
		Services:  append([]booking.Service(nil), booking.Services...),
	}, nil
}

func (s *bookingServiceImpl) Book(ctx context.Context, req booking.Request) (*models.Acknowledgement, error) {
	req = req.WithDefaults()
	if fields := s.validator.Validate(req); len(fields) > 0 {
		return nil, &FormError{Message: booking.FormErrorMessage, Fields: fields}
	}

	label, _ := booking.ServiceLabel(req.Service)
	day, _ := time.Parse(booking.DateLayout, strings.TrimSpace(req.Date))
	event := models.BookingEvent{
		Event:        models.EventBookingCreated,
		ReferenceID:  uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Service:      req.Service,
		ServiceLabel: label,
		Date:         req.Date,
		Time:         req.Time,
		Timestamp:    s.validator.Today().UTC(),
	}

	s.logger.Info("Booking confirmed",
		zap.String("reference_id", event.ReferenceID),
		zap.String("service", event.Service),
		zap.String("date", event.Date),
		zap.String("time", event.Time),
	)
	notify(ctx, s.snsClient, s.snsTopicArn, event, s.logger)
	countMetric(s.metrics, awspkg.MetricBookingsCreated, map[string]string{"Service": event.Service}, s.logger)

	return &models.Acknowledgement{
		ReferenceID: event.ReferenceID,
		Message:     fmt.Sprintf("Your appointment has been scheduled for %s at %s.", day.Format("Monday, January 2"), strings.TrimSpace(req.Time)),
	}, nil
}
