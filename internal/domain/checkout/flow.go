package checkout

import (
	"github.com/example/hamper-shop/internal/domain/cart"
	"github.com/example/hamper-shop/internal/logger"
	"github.com/rs/zerolog"
)

type Step int

const (
	CartReview Step = iota + 1
	CustomerDetails
	FinalOrder
)

func (s Step) String() string {
	switch s {
	case CartReview:
		return "cart_review"
	case CustomerDetails:
		return "customer_details"
	case FinalOrder:
		return "final_order"
	default:
		return "unknown"
	}
}

// validTransitions defines the single-step moves available from each step.
// Forward moves are additionally gated by CanGoToStep.
var validTransitions = map[Step][]Step{
	CartReview:      {CustomerDetails},
	CustomerDetails: {CartReview, FinalOrder},
	FinalOrder:      {CustomerDetails},
}

// CanGoToStep holds when every gate up to and including target is open.
func CanGoToStep(c *cart.Cart, target Step) bool {
	switch target {
	case CartReview:
		return true
	case CustomerDetails:
		return c != nil && !c.IsEmpty()
	case FinalOrder:
		return c != nil && !c.IsEmpty() && c.Customer.HasContact()
	default:
		return false
	}
}

// Flow tracks the checkout position. Disallowed moves leave it unchanged.
type Flow struct {
	step Step
	log  zerolog.Logger
}

func NewFlow(log zerolog.Logger) *Flow {
	return &Flow{
		step: CartReview,
		log:  logger.Component(log, "checkout"),
	}
}

func (f *Flow) Step() Step { return f.step }

func (f *Flow) Reset() { f.step = CartReview }

// CanTransitionTo checks if the flow can move one step to target
func (f *Flow) CanTransitionTo(c *cart.Cart, target Step) bool {
	allowed, exists := validTransitions[f.step]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s != target {
			continue
		}
		if target < f.step {
			return true
		}
		return CanGoToStep(c, target)
	}
	return false
}

// Next advances one step when the gate holds.
func (f *Flow) Next(c *cart.Cart) bool {
	return f.move(c, f.step+1)
}

// Back always succeeds unless already at the first step.
func (f *Flow) Back(c *cart.Cart) bool {
	return f.move(c, f.step-1)
}

// GoTo jumps directly, as from a step indicator. It reports whether the
// step changed.
func (f *Flow) GoTo(c *cart.Cart, target Step) bool {
	if target == f.step {
		return false
	}
	if !CanGoToStep(c, target) {
		f.log.Debug().Stringer("from", f.step).Stringer("to", target).Msg("jump rejected")
		return false
	}
	f.set(target)
	return true
}

func (f *Flow) move(c *cart.Cart, target Step) bool {
	if !f.CanTransitionTo(c, target) {
		f.log.Debug().Stringer("from", f.step).Stringer("to", target).Msg("transition rejected")
		return false
	}
	f.set(target)
	return true
}

func (f *Flow) set(target Step) {
	f.log.Debug().Stringer("from", f.step).Stringer("to", target).Msg("step changed")
	f.step = target
}
