package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/cart"
	"storefront-service/catalog"
	"storefront-service/checkout"
	"storefront-service/database"
	"storefront-service/models"
	"storefront-service/order"
	"storefront-service/pricing"

	awspkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

// StorefrontService applies shopper actions to the cart and checkout of one
// session. Every call is one user action: the session is loaded, changed and
// saved while holding that session's lock.
type StorefrontService interface {
	GetCart(ctx context.Context, sessionID string) (*models.CartView, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*models.CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*models.CartView, error)
	ClearCart(ctx context.Context, sessionID string) (*models.CartView, error)
	OpenCart(ctx context.Context, sessionID string) (*models.CartView, error)
	CloseCart(ctx context.Context, sessionID string) (*models.CartView, error)

	GetCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	OpenCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	CloseCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	EditShippingField(ctx context.Context, sessionID, field, value string) (*models.CheckoutView, error)
	EditPaymentField(ctx context.Context, sessionID, field, value string) (*models.CheckoutView, error)
	SelectPaymentType(ctx context.Context, sessionID, paymentType string) (*models.CheckoutView, error)
	SubmitShipping(ctx context.Context, sessionID string, addr *checkout.ShippingAddress) (*models.CheckoutView, error)
	SubmitPayment(ctx context.Context, sessionID string, details *checkout.PaymentDetails) (*models.CheckoutView, error)
	Back(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	EditShipping(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	EditPayment(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	PlaceOrder(ctx context.Context, sessionID string) (*order.Confirmation, error)
	Confirmation(ctx context.Context, sessionID string) (*order.Confirmation, error)
	Receipt(ctx context.Context, sessionID string) (string, error)
	StartOver(ctx context.Context, sessionID string) (*models.CheckoutView, error)
}

// announceTimeout bounds publishing an order.placed event. The order is
// already saved by then, so a shopper who disconnects does not cancel it.
const announceTimeout = 10 * time.Second

type storefrontServiceImpl struct {
	repo      database.SessionRepository
	catalog   *catalog.Catalog
	validator *checkout.Validator
	finalizer *order.Finalizer
	metrics   awspkg.MetricsRecorder
	logger    *zap.Logger
	locks     *keyedMutex
}

// NewStorefrontService creates a new StorefrontService. metrics may be nil.
func NewStorefrontService(
	repo database.SessionRepository,
	cat *catalog.Catalog,
	validator *checkout.Validator,
	finalizer *order.Finalizer,
	metrics awspkg.MetricsRecorder,
	logger *zap.Logger,
) StorefrontService {
	return &storefrontServiceImpl{
		repo:      repo,
		catalog:   cat,
		validator: validator,
		finalizer: finalizer,
		metrics:   metrics,
		logger:    logger,
		locks:     newKeyedMutex(),
	}
}

type session struct {
	state *models.SessionState
	cart  *cart.Store
	flow  *checkout.Flow
}

func (s *storefrontServiceImpl) load(ctx context.Context, sessionID string) (*session, error) {
	state, err := s.repo.GetSession(ctx, sessionID)
	switch {
	case errors.Is(err, database.ErrSessionNotFound):
		state = &models.SessionState{ID: sessionID}
	case errors.Is(err, database.ErrSessionCorrupt):
		s.logger.Warn("Discarding corrupt session", zap.String("session_id", sessionID), zap.Error(err))
		if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
		}
		state = &models.SessionState{ID: sessionID}
	case err != nil:
		s.logger.Error("Failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	sess := &session{state: state, cart: cart.NewStore(), flow: checkout.NewFlow(s.validator)}
	sess.cart.Restore(state.Cart)
	if err := sess.flow.Restore(state.Checkout); err != nil {
		s.logger.Warn("Discarding inconsistent checkout state", zap.String("session_id", sessionID), zap.Error(err))
		sess.flow.Reset()
		state.Confirmation = nil
	}
	return sess, nil
}

func (s *storefrontServiceImpl) save(ctx context.Context, sess *session) error {
	sess.state.Cart = sess.cart.Snapshot()
	sess.state.Checkout = sess.flow.Snapshot()

	start := time.Now()
	if err := s.repo.SaveSession(ctx, sess.state); err != nil {
		s.logger.Error("Failed to save session", zap.String("session_id", sess.state.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	s.record(func(ctx context.Context) error {
		return s.metrics.RecordLatency(ctx, awspkg.MetricSessionStoreLatency, time.Since(start), nil)
	})
	return nil
}

// read loads the session without saving it.
func (s *storefrontServiceImpl) read(ctx context.Context, sessionID string, fn func(*session) error) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	return fn(sess)
}

// update runs fn against the session and saves the result. Rejected actions
// leave nothing to save; failed form submissions are saved because the form
// now carries its field errors.
func (s *storefrontServiceImpl) update(ctx context.Context, sessionID string, fn func(*session) error) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	var events []cart.Event
	unsubscribe := sess.cart.Subscribe(func(e cart.Event) { events = append(events, e) })
	fnErr := fn(sess)
	unsubscribe()

	var verr *checkout.ValidationError
	if fnErr != nil && !errors.As(fnErr, &verr) {
		return fnErr
	}
	if err := s.save(ctx, sess); err != nil {
		return err
	}
	s.observe(sessionID, events)
	return fnErr
}

// observe logs cart events and turns them into business metrics.
func (s *storefrontServiceImpl) observe(sessionID string, events []cart.Event) {
	for _, e := range events {
		s.logger.Debug("Cart updated",
			zap.String("session_id", sessionID),
			zap.String("event", string(e.Kind)),
			zap.String("item_id", e.ItemID),
			zap.Int("quantity", e.Quantity),
		)

		var metric string
		switch e.Kind {
		case cart.EventItemAdded:
			metric = awspkg.MetricCartItemsAdded
		case cart.EventItemRemoved:
			metric = awspkg.MetricCartItemsRemoved
		case cart.EventCheckoutOpened:
			metric = awspkg.MetricCheckoutsStarted
		default:
			continue
		}
		s.record(func(ctx context.Context) error {
			return s.metrics.RecordCount(ctx, metric, nil)
		})
	}
}

// record sends a metric off the request path.
func (s *storefrontServiceImpl) record(send func(ctx context.Context) error) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			s.logger.Debug("Failed to record metric", zap.Error(err))
		}
	}()
}

func (s *storefrontServiceImpl) cartAction(ctx context.Context, sessionID string, fn func(*session) error) (*models.CartView, error) {
	var view *models.CartView
	err := s.update(ctx, sessionID, func(sess *session) error {
		if err := fn(sess); err != nil {
			return err
		}
		view = cartView(sess.cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *storefrontServiceImpl) checkoutAction(ctx context.Context, sessionID string, fn func(*session) error) (*models.CheckoutView, error) {
	var view *models.CheckoutView
	err := s.update(ctx, sessionID, func(sess *session) error {
		if err := fn(sess); err != nil {
			return err
		}
		view = checkoutView(sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *storefrontServiceImpl) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	var view *models.CartView
	err := s.read(ctx, sessionID, func(sess *session) error {
		view = cartView(sess.cart)
		return nil
	})
	return view, err
}

func (s *storefrontServiceImpl) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*models.CartView, error) {
	product, ok := s.catalog.Product(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return s.cartAction(ctx, sessionID, func(sess *session) error {
		sess.cart.AddItem(product, quantity)
		return nil
	})
}

func (s *storefrontServiceImpl) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*models.CartView, error) {
	return s.cartAction(ctx, sessionID, func(sess *session) error {
		sess.cart.UpdateQuantity(productID, quantity)
		return nil
	})
}

func (s *storefrontServiceImpl) RemoveItem(ctx context.Context, sessionID, productID string) (*models.CartView, error) {
	return s.cartAction(ctx, sessionID, func(sess *session) error {
		sess.cart.RemoveItem(productID)
		return nil
	})
}

func (s *storefrontServiceImpl) ClearCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	return s.cartAction(ctx, sessionID, func(sess *session) error {
		sess.cart.ClearCart()
		return nil
	})
}

func (s *storefrontServiceImpl) OpenCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	return s.cartAction(ctx, sessionID, func(sess *session) error {
		sess.cart.OpenCart()
		return nil
	})
}

func (s *storefrontServiceImpl) CloseCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	return s.cartAction(ctx, sessionID, func(sess *session) error {
		sess.cart.CloseCart()
		return nil
	})
}

func (s *storefrontServiceImpl) GetCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	var view *models.CheckoutView
	err := s.read(ctx, sessionID, func(sess *session) error {
		view = checkoutView(sess)
		return nil
	})
	return view, err
}

// OpenCheckout opens the checkout modal. An empty cart cannot be checked out
// unless an order was already placed from it.
func (s *storefrontServiceImpl) OpenCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		if sess.cart.IsEmpty() && !sess.flow.OrderPlaced() {
			return ErrCartEmpty
		}
		sess.cart.OpenCheckout()
		return nil
	})
}

// CloseCheckout hides the modal. The flow keeps its step and data so
// reopening resumes where the shopper left off.
func (s *storefrontServiceImpl) CloseCheckout(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		sess.cart.CloseCheckout()
		return nil
	})
}

func (s *storefrontServiceImpl) EditShippingField(ctx context.Context, sessionID, field, value string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		return sess.flow.EditShippingField(field, value)
	})
}

func (s *storefrontServiceImpl) EditPaymentField(ctx context.Context, sessionID, field, value string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		return sess.flow.EditPaymentField(field, value)
	})
}

func (s *storefrontServiceImpl) SelectPaymentType(ctx context.Context, sessionID, paymentType string) (*models.CheckoutView, error) {
	t, err := checkout.ParsePaymentType(paymentType)
	if err != nil {
		return nil, err
	}
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		return sess.flow.SelectPaymentType(t)
	})
}

// SubmitShipping optionally replaces the shipping draft with addr and then
// submits step one.
func (s *storefrontServiceImpl) SubmitShipping(ctx context.Context, sessionID string, addr *checkout.ShippingAddress) (*models.CheckoutView, error) {
	view, err := s.checkoutAction(ctx, sessionID, func(sess *session) error {
		if addr != nil {
			if err := sess.flow.FillShipping(*addr); err != nil {
				return err
			}
		}
		return sess.flow.SubmitShipping()
	})
	s.noteValidation(sessionID, checkout.StepShipping, err)
	return view, err
}

// SubmitPayment optionally replaces the payment draft with details and then
// submits step two.
func (s *storefrontServiceImpl) SubmitPayment(ctx context.Context, sessionID string, details *checkout.PaymentDetails) (*models.CheckoutView, error) {
	view, err := s.checkoutAction(ctx, sessionID, func(sess *session) error {
		if details != nil {
			if err := sess.flow.FillPayment(*details); err != nil {
				return err
			}
		}
		return sess.flow.SubmitPayment()
	})
	s.noteValidation(sessionID, checkout.StepPayment, err)
	return view, err
}

func (s *storefrontServiceImpl) noteValidation(sessionID string, step checkout.Step, err error) {
	var verr *checkout.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	s.logger.Info("Checkout form rejected",
		zap.String("session_id", sessionID),
		zap.String("step", step.String()),
		zap.Strings("fields", fields),
	)
	s.record(func(ctx context.Context) error {
		return s.metrics.RecordCount(ctx, awspkg.MetricValidationFailures, map[string]string{"Step": step.String()})
	})
}

func (s *storefrontServiceImpl) Back(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		return sess.flow.Back()
	})
}

func (s *storefrontServiceImpl) EditShipping(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		return sess.flow.EditShipping()
	})
}

func (s *storefrontServiceImpl) EditPayment(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		return sess.flow.EditPayment()
	})
}

// PlaceOrder finalizes the reviewed order. The cart is left untouched until
// the shopper starts over. The order is announced only once the session
// holding its confirmation has been saved, and outside the session lock.
func (s *storefrontServiceImpl) PlaceOrder(ctx context.Context, sessionID string) (*order.Confirmation, error) {
	var placed *order.Confirmation
	err := s.update(ctx, sessionID, func(sess *session) error {
		err := sess.flow.PlaceOrder(func(addr checkout.ShippingAddress, pm checkout.PaymentMethod) (string, error) {
			if sess.cart.IsEmpty() {
				return "", ErrCartEmpty
			}
			conf, err := s.finalizer.Finalize(order.Request{
				SessionID: sessionID,
				Items:     sess.cart.Items(),
				Shipping:  addr,
				Payment:   pm,
			})
			if err != nil {
				return "", err
			}
			placed = conf
			return conf.OrderID, nil
		})
		if err != nil {
			return err
		}
		sess.state.Confirmation = placed
		return nil
	})
	if err != nil {
		return nil, err
	}

	announceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), announceTimeout)
	defer cancel()
	s.finalizer.Announce(announceCtx, sessionID, placed)

	total, _ := placed.Costs.Total.Float64()
	s.record(func(ctx context.Context) error {
		if err := s.metrics.RecordCount(ctx, awspkg.MetricOrdersPlaced, nil); err != nil {
			return err
		}
		return s.metrics.RecordValue(ctx, awspkg.MetricOrderValue, total, nil)
	})
	return placed, nil
}

func (s *storefrontServiceImpl) Confirmation(ctx context.Context, sessionID string) (*order.Confirmation, error) {
	var conf *order.Confirmation
	err := s.read(ctx, sessionID, func(sess *session) error {
		if !sess.flow.OrderPlaced() || sess.state.Confirmation == nil {
			return ErrNoConfirmation
		}
		conf = sess.state.Confirmation
		return nil
	})
	return conf, err
}

func (s *storefrontServiceImpl) Receipt(ctx context.Context, sessionID string) (string, error) {
	conf, err := s.Confirmation(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return order.RenderReceipt(*conf), nil
}

// StartOver clears the cart, resets the flow and closes the checkout.
func (s *storefrontServiceImpl) StartOver(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return s.checkoutAction(ctx, sessionID, func(sess *session) error {
		sess.cart.ClearCart()
		sess.flow.Reset()
		sess.cart.CloseCheckout()
		sess.state.Confirmation = nil
		return nil
	})
}

func cartView(store *cart.Store) *models.CartView {
	items := store.Items()
	if items == nil {
		items = []cart.Item{}
	}
	costs := pricing.Compute(store.Subtotal())
	return &models.CartView{
		Items:          items,
		TotalItems:     store.TotalItems(),
		Costs:          costs,
		FreeShipping:   costs.FreeShipping(),
		IsCartOpen:     store.IsCartOpen(),
		IsCheckoutOpen: store.IsCheckoutOpen(),
	}
}

func checkoutView(sess *session) *models.CheckoutView {
	flow := sess.flow
	step := flow.Step()

	pf := flow.PaymentForm()
	pf.Values.CVV = ""

	view := &models.CheckoutView{
		Step:           int(step),
		StepName:       step.String(),
		Allowed:        flow.Allowed(),
		IsCheckoutOpen: sess.cart.IsCheckoutOpen(),
		ShippingForm:   flow.ShippingForm(),
		PaymentForm:    models.PaymentFormView{Values: pf.Values, Errors: pf.Errors},
		OrderPlaced:    flow.OrderPlaced(),
		OrderID:        flow.OrderID(),
	}

	if step == checkout.StepReview && !flow.OrderPlaced() {
		addr, _ := flow.Shipping()
		items := sess.cart.Items()
		if items == nil {
			items = []cart.Item{}
		}
		review := &models.ReviewView{
			Items:         items,
			TotalItems:    sess.cart.TotalItems(),
			Costs:         pricing.Compute(sess.cart.Subtotal()),
			Shipping:      addr,
			ShippingLines: addr.Lines(),
		}
		if pm := flow.Payment(); pm != nil {
			review.PaymentSummary = pm.Summary()
		}
		view.Review = review
	}
	if flow.OrderPlaced() {
		view.Confirmation = sess.state.Confirmation
	}
	return view
}
