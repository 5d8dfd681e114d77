package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/booking"
	"storefront-service/contact"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// ContactController handles the contact form and consultation bookings.
type ContactController struct {
	contactService services.ContactService
	bookingService services.BookingService
}

func NewContactController(contactService services.ContactService, bookingService services.BookingService) *ContactController {
	return &ContactController{contactService: contactService, bookingService: bookingService}
}

// SubmitContact handles POST /contact
func (cc *ContactController) SubmitContact(ctx *gin.Context) {
	var sub contact.Submission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		badRequest(ctx, err)
		return
	}
	ack, err := cc.contactService.Submit(ctx.Request.Context(), sub)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ack)
}

// GetCalendar handles GET /calendar?year=&month=&selected=
func (cc *ContactController) GetCalendar(ctx *gin.Context) {
	year, err := optionalInt(ctx.Query("year"))
	if err != nil {
		badRequest(ctx, err)
		return
	}
	month, err := optionalInt(ctx.Query("month"))
	if err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := cc.bookingService.Calendar(year, month, ctx.Query("selected"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// CreateBooking handles POST /bookings
func (cc *ContactController) CreateBooking(ctx *gin.Context) {
	var req booking.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	ack, err := cc.bookingService.Book(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ack)
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
