package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"storefront-service/checkout"
	"storefront-service/controllers"
	"storefront-service/models"
	"storefront-service/order"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckoutRouter(svc services.StorefrontService) *gin.Engine {
	r := newTestEngine()
	cc := controllers.NewCheckoutController(svc)
	r.GET("/checkout", cc.GetCheckout)
	r.POST("/checkout/open", cc.OpenCheckout)
	r.POST("/checkout/close", cc.CloseCheckout)
	r.PATCH("/checkout/shipping", cc.EditShippingField)
	r.POST("/checkout/shipping", cc.SubmitShipping)
	r.PATCH("/checkout/payment", cc.EditPaymentField)
	r.POST("/checkout/payment", cc.SubmitPayment)
	r.PUT("/checkout/payment/type", cc.SelectPaymentType)
	r.POST("/checkout/back", cc.Back)
	r.POST("/checkout/edit/shipping", cc.EditShipping)
	r.POST("/checkout/edit/payment", cc.EditPayment)
	r.POST("/checkout/place-order", cc.PlaceOrder)
	r.GET("/checkout/confirmation", cc.GetConfirmation)
	r.GET("/checkout/receipt", cc.GetReceipt)
	r.POST("/checkout/start-over", cc.StartOver)
	return r
}

func TestCheckoutController_OpenCheckout_EmptyCart(t *testing.T) {
	svc := &mockStorefrontService{
		openCheckoutFn: func() (*models.CheckoutView, error) {
			return nil, services.ErrCartEmpty
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/open", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, decode(t, w)["error"])
}

func TestCheckoutController_SubmitShipping_WithoutBody(t *testing.T) {
	called := false
	svc := &mockStorefrontService{
		submitShippingFn: func(addr *checkout.ShippingAddress) (*models.CheckoutView, error) {
			called = true
			assert.Nil(t, addr)
			return &models.CheckoutView{Step: 2, StepName: "payment"}, nil
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/shipping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Equal(t, float64(2), decode(t, w)["step"])
}

func TestCheckoutController_SubmitShipping_WithBody(t *testing.T) {
	var got *checkout.ShippingAddress
	svc := &mockStorefrontService{
		submitShippingFn: func(addr *checkout.ShippingAddress) (*models.CheckoutView, error) {
			got = addr
			return &models.CheckoutView{Step: 2}, nil
		},
	}
	r := setupCheckoutRouter(svc)

	body := map[string]string{"full_name": "Ada Lovelace", "city": "London", "phone": "555-123-4567"}
	w := doRequest(r, http.MethodPost, "/checkout/shipping", body)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, "London", got.City)
}

func TestCheckoutController_SubmitShipping_ValidationFailure(t *testing.T) {
	svc := &mockStorefrontService{
		submitShippingFn: func(*checkout.ShippingAddress) (*models.CheckoutView, error) {
			return nil, &checkout.ValidationError{
				Message: checkout.FormErrorMessage,
				Fields:  checkout.FieldErrors{"phone": "Phone number is required"},
			}
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/shipping", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode(t, w)
	assert.Equal(t, checkout.FormErrorMessage, resp["error"])
	fields := resp["fields"].(map[string]interface{})
	assert.Equal(t, "Phone number is required", fields["phone"])
}

func TestCheckoutController_SubmitPayment_MalformedBody(t *testing.T) {
	svc := &mockStorefrontService{}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/payment", "{")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.sessions)
}

func TestCheckoutController_SubmitPayment_OutOfOrder(t *testing.T) {
	svc := &mockStorefrontService{
		submitPaymentFn: func(details *checkout.PaymentDetails) (*models.CheckoutView, error) {
			require.NotNil(t, details)
			assert.Equal(t, checkout.PaymentPayPal, details.Type)
			return nil, fmt.Errorf("submit payment at shipping: %w", checkout.ErrTransitionNotAllowed)
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/payment", map[string]string{"type": "paypal"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutController_EditFields(t *testing.T) {
	var gotField, gotValue string
	svc := &mockStorefrontService{
		editPaymentFieldFn: func(field, value string) (*models.CheckoutView, error) {
			gotField, gotValue = field, value
			return &models.CheckoutView{Step: 2}, nil
		},
		editShippingFieldFn: func(field, _ string) (*models.CheckoutView, error) {
			return nil, fmt.Errorf("%w: %q", checkout.ErrUnknownField, field)
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPatch, "/checkout/payment", models.FieldEditRequest{Field: "card_number", Value: "4111"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "card_number", gotField)
	assert.Equal(t, "4111", gotValue)

	w = doRequest(r, http.MethodPatch, "/checkout/shipping", models.FieldEditRequest{Field: "nickname", Value: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPatch, "/checkout/shipping", map[string]string{"value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutController_SelectPaymentType_Unknown(t *testing.T) {
	svc := &mockStorefrontService{
		selectTypeFn: func(paymentType string) (*models.CheckoutView, error) {
			_, err := checkout.ParsePaymentType(paymentType)
			return nil, err
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPut, "/checkout/payment/type", models.PaymentTypeRequest{Type: "bitcoin"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutController_Navigation(t *testing.T) {
	svc := &mockStorefrontService{}
	r := setupCheckoutRouter(svc)

	for path, step := range map[string]float64{
		"/checkout/back":          1,
		"/checkout/edit/shipping": 1,
		"/checkout/edit/payment":  2,
		"/checkout/start-over":    1,
	} {
		w := doRequest(r, http.MethodPost, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, step, decode(t, w)["step"], path)
	}
}

func TestCheckoutController_Back_AfterPlacement(t *testing.T) {
	svc := &mockStorefrontService{
		backFn: func() (*models.CheckoutView, error) {
			return nil, checkout.ErrOrderAlreadyPlaced
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/back", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutController_PlaceOrder(t *testing.T) {
	svc := &mockStorefrontService{
		placeOrderFn: func() (*order.Confirmation, error) {
			return &order.Confirmation{OrderID: "ORD-123456", TotalItems: 3}, nil
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/place-order", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	conf := resp["confirmation"].(map[string]interface{})
	assert.Equal(t, "ORD-123456", conf["order_id"])
}

func TestCheckoutController_PlaceOrder_MissingPayment(t *testing.T) {
	svc := &mockStorefrontService{
		placeOrderFn: func() (*order.Confirmation, error) {
			return nil, checkout.ErrMissingPayment
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/place-order", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutController_Confirmation_NotPlaced(t *testing.T) {
	svc := &mockStorefrontService{
		confirmationFn: func() (*order.Confirmation, error) {
			return nil, services.ErrNoConfirmation
		},
		receiptFn: func() (string, error) {
			return "", services.ErrNoConfirmation
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodGet, "/checkout/confirmation", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/checkout/receipt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutController_Receipt(t *testing.T) {
	svc := &mockStorefrontService{
		receiptFn: func() (string, error) {
			return "ORDER CONFIRMATION\nOrder ID: ORD-123456\n", nil
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodGet, "/checkout/receipt", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "ORD-123456")
}

func TestCheckoutController_DeadlineExceeded(t *testing.T) {
	svc := &mockStorefrontService{
		backFn: func() (*models.CheckoutView, error) {
			return nil, fmt.Errorf("load session: %w", context.DeadlineExceeded)
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/back", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCheckoutController_UnexpectedError(t *testing.T) {
	svc := &mockStorefrontService{
		backFn: func() (*models.CheckoutView, error) {
			return nil, fmt.Errorf("boom")
		},
	}
	r := setupCheckoutRouter(svc)

	w := doRequest(r, http.MethodPost, "/checkout/back", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
