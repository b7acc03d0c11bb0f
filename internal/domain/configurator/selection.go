package configurator

import (
	"github.com/example/hamper-shop/internal/catalog"
	"github.com/shopspring/decimal"
)

// Step is a configurator page, 1 through 5.
type Step int

const (
	StepOccasion Step = iota + 1
	StepVibe
	StepPackaging
	StepContents
	StepReview
)

const (
	FirstStep = StepOccasion
	LastStep  = StepReview
)

func (s Step) String() string {
	switch s {
	case StepOccasion:
		return "occasion"
	case StepVibe:
		return "vibe"
	case StepPackaging:
		return "packaging"
	case StepContents:
		return "contents"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// Selection is the in-progress custom hamper. Contents keeps pick order and
// never holds the same id twice.
type Selection struct {
	Occasion  *catalog.Occasion
	Vibe      *catalog.Vibe
	Packaging *catalog.Packaging
	Contents  []catalog.Content
}

// Price is the packaging price plus every content price. Unset fields add 0.
func (s Selection) Price() decimal.Decimal {
	total := decimal.Zero
	if s.Packaging != nil {
		total = total.Add(s.Packaging.Price)
	}
	for _, c := range s.Contents {
		total = total.Add(c.Price)
	}
	return total
}

// CanEnterStep is derived from the selection alone.
func (s Selection) CanEnterStep(n Step) bool {
	switch n {
	case StepOccasion:
		return true
	case StepVibe:
		return s.Occasion != nil
	case StepPackaging:
		return s.Occasion != nil && s.Vibe != nil
	case StepContents:
		return s.Occasion != nil && s.Vibe != nil && s.Packaging != nil
	case StepReview:
		return s.Occasion != nil && s.Vibe != nil && s.Packaging != nil && len(s.Contents) > 0
	default:
		return false
	}
}

// Complete reports whether the selection can become a cart item.
func (s Selection) Complete() bool {
	return s.CanEnterStep(LastStep)
}

func (s Selection) HasContent(id string) bool {
	for _, c := range s.Contents {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s Selection) ContentNames() []string {
	names := make([]string, 0, len(s.Contents))
	for _, c := range s.Contents {
		names = append(names, c.Name)
	}
	return names
}

func (s Selection) clone() Selection {
	out := s
	out.Contents = append([]catalog.Content(nil), s.Contents...)
	return out
}
