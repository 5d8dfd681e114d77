package controllers_test

import (
	"context"

	"storefront-service/checkout"
	"storefront-service/models"
	"storefront-service/order"
)

// mockStorefrontService records the session id of every call. Unset fns
// return an empty view.
type mockStorefrontService struct {
	sessions []string

	addItemFn        func(productID string, quantity int) (*models.CartView, error)
	updateQuantityFn func(productID string, quantity int) (*models.CartView, error)
	removeItemFn     func(productID string) (*models.CartView, error)

	openCheckoutFn      func() (*models.CheckoutView, error)
	editShippingFieldFn func(field, value string) (*models.CheckoutView, error)
	editPaymentFieldFn  func(field, value string) (*models.CheckoutView, error)
	selectTypeFn        func(paymentType string) (*models.CheckoutView, error)
	submitShippingFn    func(addr *checkout.ShippingAddress) (*models.CheckoutView, error)
	submitPaymentFn     func(details *checkout.PaymentDetails) (*models.CheckoutView, error)
	backFn              func() (*models.CheckoutView, error)
	placeOrderFn        func() (*order.Confirmation, error)
	confirmationFn      func() (*order.Confirmation, error)
	receiptFn           func() (string, error)
}

func (m *mockStorefrontService) seen(sessionID string) {
	m.sessions = append(m.sessions, sessionID)
}

func (m *mockStorefrontService) GetCart(_ context.Context, sid string) (*models.CartView, error) {
	m.seen(sid)
	return &models.CartView{}, nil
}
func (m *mockStorefrontService) AddItem(_ context.Context, sid, productID string, quantity int) (*models.CartView, error) {
	m.seen(sid)
	if m.addItemFn == nil {
		return &models.CartView{}, nil
	}
	return m.addItemFn(productID, quantity)
}
func (m *mockStorefrontService) UpdateQuantity(_ context.Context, sid, productID string, quantity int) (*models.CartView, error) {
	m.seen(sid)
	if m.updateQuantityFn == nil {
		return &models.CartView{}, nil
	}
	return m.updateQuantityFn(productID, quantity)
}
func (m *mockStorefrontService) RemoveItem(_ context.Context, sid, productID string) (*models.CartView, error) {
	m.seen(sid)
	if m.removeItemFn == nil {
		return &models.CartView{}, nil
	}
	return m.removeItemFn(productID)
}
func (m *mockStorefrontService) ClearCart(_ context.Context, sid string) (*models.CartView, error) {
	m.seen(sid)
	return &models.CartView{}, nil
}
func (m *mockStorefrontService) OpenCart(_ context.Context, sid string) (*models.CartView, error) {
	m.seen(sid)
	return &models.CartView{IsCartOpen: true}, nil
}
func (m *mockStorefrontService) CloseCart(_ context.Context, sid string) (*models.CartView, error) {
	m.seen(sid)
	return &models.CartView{}, nil
}

func (m *mockStorefrontService) GetCheckout(_ context.Context, sid string) (*models.CheckoutView, error) {
	m.seen(sid)
	return &models.CheckoutView{Step: 1}, nil
}
func (m *mockStorefrontService) OpenCheckout(_ context.Context, sid string) (*models.CheckoutView, error) {
	m.seen(sid)
	if m.openCheckoutFn == nil {
		return &models.CheckoutView{Step: 1, IsCheckoutOpen: true}, nil
	}
	return m.openCheckoutFn()
}
func (m *mockStorefrontService) CloseCheckout(_ context.Context, sid string) (*models.CheckoutView, error) {
	m.seen(sid)
	return &models.CheckoutView{}, nil
}
func (m *mockStorefrontService) EditShippingField(_ context.Context, sid, field, value string) (*models.CheckoutView, error) {
	m.seen(sid)
	if m.editShippingFieldFn == nil {
		return &models.CheckoutView{}, nil
	}
	return m.editShippingFieldFn(field, value)
}
func (m *mockStorefrontService) EditPaymentField(_ context.Context, sid, field, value string) (*models.CheckoutView, error) {
	m.seen(sid)
	if m.editPaymentFieldFn == nil {
		return &models.CheckoutView{}, nil
	}
	return m.editPaymentFieldFn(field, value)
}
func (m *mockStorefrontService) SelectPaymentType(_ context.Context, sid, paymentType string) (*models.CheckoutView, error) {
	m.seen(sid)
	if m.selectTypeFn == nil {
		return &models.CheckoutView{}, nil
	}
	return m.selectTypeFn(paymentType)
}
func (m *mockStorefrontService) SubmitShipping(_ context.Context, sid string, addr *checkout.ShippingAddress) (*models.CheckoutView, error) {
	m.seen(sid)
	if m.submitShippingFn == nil {
		return &models.CheckoutView{Step: 2}, nil
	}
	return m.submitShippingFn(addr)
}
func (m *mockStorefrontService) SubmitPayment(_ context.Context, sid string, details *checkout.PaymentDetails) (*models.CheckoutView, error) {
	m.seen(sid)
	if m.submitPaymentFn == nil {
		return &models.CheckoutView{Step: 3}, nil
	}
	return m.submitPaymentFn(details)
}
func (m *mockStorefrontService) Back(_ context.Context, sid string) (*models.CheckoutView, error) {
	m.seen(sid)
	if m.backFn == nil {
		return &models.CheckoutView{Step: 1}, nil
	}
	return m.backFn()
}
func (m *mockStorefrontService) EditShipping(_ context.Context, sid string) (*models.CheckoutView, error) {
	m.seen(sid)
	return &models.CheckoutView{Step: 1}, nil
}
func (m *mockStorefrontService) EditPayment(_ context.Context, sid string) (*models.CheckoutView, error) {
	m.seen(sid)
	return &models.CheckoutView{Step: 2}, nil
}
func (m *mockStorefrontService) PlaceOrder(_ context.Context, sid string) (*order.Confirmation, error) {
	m.seen(sid)
	return m.placeOrderFn()
}
func (m *mockStorefrontService) Confirmation(_ context.Context, sid string) (*order.Confirmation, error) {
	m.seen(sid)
	return m.confirmationFn()
}
func (m *mockStorefrontService) Receipt(_ context.Context, sid string) (string, error) {
	m.seen(sid)
	return m.receiptFn()
}
func (m *mockStorefrontService) StartOver(_ context.Context, sid string) (*models.CheckoutView, error) {
	m.seen(sid)
	return &models.CheckoutView{Step: 1}, nil
}
