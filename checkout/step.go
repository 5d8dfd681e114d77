package checkout

import "fmt"

// Step is the position of the checkout wizard.
type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

func (s Step) Valid() bool {
	return s >= StepShipping && s <= StepReview
}

// Action is a user intent that may move the wizard.
type Action string

const (
	ActionSubmitShipping Action = "submit_shipping"
	ActionSubmitPayment  Action = "submit_payment"
	ActionBack           Action = "back"
	ActionEditShipping   Action = "edit_shipping"
	ActionEditPayment    Action = "edit_payment"
	ActionPlaceOrder     Action = "place_order"
	ActionReset          Action = "reset"
)

// transitions lists every legal (step, action) pair. Reset is legal from any
// step and is handled separately.
var transitions = map[Step]map[Action]Step{
	StepShipping: {
		ActionSubmitShipping: StepPayment,
	},
	StepPayment: {
		ActionSubmitPayment: StepReview,
		ActionBack:          StepShipping,
	},
	StepReview: {
		ActionBack:         StepPayment,
		ActionEditShipping: StepShipping,
		ActionEditPayment:  StepPayment,
		ActionPlaceOrder:   StepReview,
	},
}

// Next looks up the step reached by applying a at from.
func Next(from Step, a Action) (Step, error) {
	if a == ActionReset {
		return StepShipping, nil
	}
	to, ok := transitions[from][a]
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", ErrTransitionNotAllowed, a, from)
	}
	return to, nil
}

// Allowed lists the actions available from step, reset excluded.
func Allowed(step Step) []Action {
	order := []Action{
		ActionSubmitShipping,
		ActionSubmitPayment,
		ActionBack,
		ActionEditShipping,
		ActionEditPayment,
		ActionPlaceOrder,
	}
	var out []Action
	for _, a := range order {
		if _, ok := transitions[step][a]; ok {
			out = append(out, a)
		}
	}
	return out
}
