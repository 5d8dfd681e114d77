package checkout

import "fmt"

// Flow drives the three step checkout: shipping address, payment method and
// review. A step is only entered after the data it depends on has been
// validated and stored, so the review step always has both.
//
// A Flow is not safe for concurrent use. Callers serialise actions per
// shopper.
type Flow struct {
	validator *Validator

	step        Step
	shipping    *ShippingAddress
	payment     PaymentMethod
	orderPlaced bool
	orderID     string

	shippingForm ShippingForm
	paymentForm  PaymentForm
}

// FinalizeFunc places the order for the stored shipping address and payment
// method and returns the order id.
type FinalizeFunc func(ShippingAddress, PaymentMethod) (string, error)

func NewFlow(v *Validator) *Flow {
	f := &Flow{validator: v}
	f.Reset()
	return f
}

func (f *Flow) Step() Step             { return f.step }
func (f *Flow) OrderPlaced() bool      { return f.orderPlaced }
func (f *Flow) OrderID() string        { return f.orderID }
func (f *Flow) Payment() PaymentMethod { return f.payment }

// Shipping returns the submitted address, if any.
func (f *Flow) Shipping() (ShippingAddress, bool) {
	if f.shipping == nil {
		return ShippingAddress{}, false
	}
	return *f.shipping, true
}

func (f *Flow) ShippingForm() ShippingForm { return f.shippingForm.clone() }
func (f *Flow) PaymentForm() PaymentForm   { return f.paymentForm.clone() }

// Allowed lists the actions the flow accepts right now.
func (f *Flow) Allowed() []Action {
	if f.orderPlaced {
		return []Action{ActionReset}
	}
	return append(Allowed(f.step), ActionReset)
}

func (f *Flow) next(a Action) (Step, error) {
	if f.orderPlaced && a != ActionReset {
		return f.step, ErrOrderAlreadyPlaced
	}
	return Next(f.step, a)
}

func (f *Flow) requireStep(step Step) error {
	if f.orderPlaced {
		return ErrOrderAlreadyPlaced
	}
	if f.step != step {
		return fmt.Errorf("%w: %s form at %s step", ErrFormNotActive, step, f.step)
	}
	return nil
}

// enter moves to step and pre-fills its draft from the stored data, so going
// back shows what was submitted before.
func (f *Flow) enter(step Step) {
	f.step = step
	switch step {
	case StepShipping:
		if f.shipping != nil {
			f.shippingForm = ShippingForm{Values: *f.shipping}
		}
	case StepPayment:
		if f.payment != nil {
			f.paymentForm = PaymentForm{Values: DetailsOf(f.payment)}
		}
	}
}

// EditShippingField updates one field of the shipping draft and clears that
// field's error.
func (f *Flow) EditShippingField(field, value string) error {
	if err := f.requireStep(StepShipping); err != nil {
		return err
	}
	return f.shippingForm.set(field, value)
}

// FillShipping replaces the whole shipping draft.
func (f *Flow) FillShipping(addr ShippingAddress) error {
	if err := f.requireStep(StepShipping); err != nil {
		return err
	}
	f.shippingForm = ShippingForm{Values: addr}
	return nil
}

// EditPaymentField updates one field of the payment draft. Card number, expiry
// and CVV are normalised as they are entered.
func (f *Flow) EditPaymentField(field, value string) error {
	if err := f.requireStep(StepPayment); err != nil {
		return err
	}
	return f.paymentForm.set(field, value)
}

// SelectPaymentType switches the payment variant and clears all payment errors.
func (f *Flow) SelectPaymentType(t PaymentType) error {
	if err := f.requireStep(StepPayment); err != nil {
		return err
	}
	if _, err := ParsePaymentType(string(t)); err != nil {
		return err
	}
	f.paymentForm.Values.Type = t
	f.paymentForm.Errors = nil
	return nil
}

// FillPayment replaces the whole payment draft, normalising card fields.
func (f *Flow) FillPayment(d PaymentDetails) error {
	if err := f.requireStep(StepPayment); err != nil {
		return err
	}
	if _, err := ParsePaymentType(string(d.Type)); err != nil {
		return err
	}
	f.paymentForm.fill(d)
	return nil
}

// SubmitShipping validates the shipping draft. On success the address is
// stored and the flow moves to the payment step; otherwise a
// *ValidationError lists every failing field and the step is unchanged.
func (f *Flow) SubmitShipping() error {
	to, err := f.next(ActionSubmitShipping)
	if err != nil {
		return err
	}

	addr := f.shippingForm.Values
	if errs := f.validator.Shipping(addr); len(errs) > 0 {
		f.shippingForm.Errors = errs
		return newValidationError(errs)
	}

	f.shippingForm.Errors = nil
	f.shipping = &addr
	f.enter(to)
	return nil
}

// SubmitPayment validates the payment draft and moves to review.
func (f *Flow) SubmitPayment() error {
	to, err := f.next(ActionSubmitPayment)
	if err != nil {
		return err
	}
	if f.shipping == nil {
		return ErrMissingShipping
	}

	pm, err := f.paymentForm.Values.Method()
	if err != nil {
		return err
	}
	if errs := f.validator.Payment(pm); len(errs) > 0 {
		f.paymentForm.Errors = errs
		return newValidationError(errs)
	}

	f.paymentForm.Errors = nil
	f.payment = pm
	f.enter(to)
	return nil
}

// Back returns to the previous step keeping everything submitted so far.
func (f *Flow) Back() error {
	return f.navigate(ActionBack)
}

// EditShipping jumps from review to the shipping step.
func (f *Flow) EditShipping() error {
	return f.navigate(ActionEditShipping)
}

// EditPayment jumps from review to the payment step.
func (f *Flow) EditPayment() error {
	return f.navigate(ActionEditPayment)
}

func (f *Flow) navigate(a Action) error {
	to, err := f.next(a)
	if err != nil {
		return err
	}
	f.enter(to)
	return nil
}

// PlaceOrder hands the stored shipping address and payment method to finalize
// and marks the order as placed. No further validation happens here.
func (f *Flow) PlaceOrder(finalize FinalizeFunc) error {
	if _, err := f.next(ActionPlaceOrder); err != nil {
		return err
	}
	if f.shipping == nil {
		return ErrMissingShipping
	}
	if f.payment == nil {
		return ErrMissingPayment
	}

	id, err := finalize(*f.shipping, f.payment)
	if err != nil {
		return err
	}
	f.orderPlaced = true
	f.orderID = id
	return nil
}

// Reset discards all checkout data and returns to an empty shipping step.
func (f *Flow) Reset() {
	f.step = StepShipping
	f.shipping = nil
	f.payment = nil
	f.orderPlaced = false
	f.orderID = ""
	f.shippingForm = newShippingForm()
	f.paymentForm = newPaymentForm()
}

// Snapshot is the serialisable state of a Flow.
type Snapshot struct {
	Step         Step             `json:"step"`
	Shipping     *ShippingAddress `json:"shipping,omitempty"`
	Payment      *PaymentDetails  `json:"payment,omitempty"`
	OrderPlaced  bool             `json:"order_placed"`
	OrderID      string           `json:"order_id,omitempty"`
	ShippingForm ShippingForm     `json:"shipping_form"`
	PaymentForm  PaymentForm      `json:"payment_form"`
}

// Snapshot captures the flow for storage. The CVV of a submitted card is never
// kept, and a drafted CVV is kept only while the payment step is active, so a
// shopper resuming past that step re-enters it.
func (f *Flow) Snapshot() Snapshot {
	s := Snapshot{
		Step:         f.step,
		OrderPlaced:  f.orderPlaced,
		OrderID:      f.orderID,
		ShippingForm: f.shippingForm.clone(),
		PaymentForm:  f.paymentForm.clone(),
	}
	if f.shipping != nil {
		addr := *f.shipping
		s.Shipping = &addr
	}
	if f.payment != nil {
		d := DetailsOf(f.payment)
		d.CVV = ""
		s.Payment = &d
	}
	if f.step != StepPayment {
		s.PaymentForm.Values.CVV = ""
	}
	return s
}

// Restore loads a snapshot. A zero snapshot yields a fresh flow.
func (f *Flow) Restore(s Snapshot) error {
	if s.Step == 0 {
		f.Reset()
		return nil
	}
	if !s.Step.Valid() {
		return fmt.Errorf("restore checkout: invalid step %d", int(s.Step))
	}

	var pm PaymentMethod
	if s.Payment != nil {
		m, err := s.Payment.Method()
		if err != nil {
			return fmt.Errorf("restore checkout: %w", err)
		}
		pm = m
	}
	switch {
	case s.Step >= StepPayment && s.Shipping == nil:
		return fmt.Errorf("restore checkout: %w", ErrMissingShipping)
	case s.Step == StepReview && pm == nil:
		return fmt.Errorf("restore checkout: %w", ErrMissingPayment)
	}

	f.step = s.Step
	f.shipping = nil
	if s.Shipping != nil {
		addr := *s.Shipping
		f.shipping = &addr
	}
	f.payment = pm
	f.orderPlaced = s.OrderPlaced
	f.orderID = s.OrderID
	f.shippingForm = s.ShippingForm.clone()
	f.paymentForm = s.PaymentForm.clone()
	if f.paymentForm.Values.Type == "" {
		f.paymentForm.Values.Type = PaymentCreditCard
	}
	return nil
}
