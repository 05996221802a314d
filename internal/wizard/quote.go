package wizard

import (
	"context"

	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/models"
)

// ErrNotImplemented signals that quote computation is an unimplemented
// extension point. A real deployment would wire a Quoter that calls an
// external quote service.
var ErrNotImplemented = errors.NewSentinel("quote computation not implemented")

// Quoter produces the terminal quote from the collected answers. The wizard
// tolerates synchronous and asynchronous implementations alike and treats the
// result as opaque. A Quoter failure is surfaced to the user as a non-fatal
// message with a retry option; it never invalidates the transcript or stages.
type Quoter interface {
	Quote(ctx context.Context, answers Answers) (models.Quote, error)
}

// UnimplementedQuoter always returns ErrNotImplemented. It makes the missing
// backend visible instead of silently fabricating data.
type UnimplementedQuoter struct{}

func (UnimplementedQuoter) Quote(context.Context, Answers) (models.Quote, error) {
	return models.Quote{}, ErrNotImplemented
}

// StaticQuoter returns a fixed sample quote regardless of the answers. It
// stands in for the real quote service during development and demos; it is a
// placeholder, not a business rule.
type StaticQuoter struct{}

func (StaticQuoter) Quote(context.Context, Answers) (models.Quote, error) {
	return models.Quote{
		PlanName:            "Comprehensive Health Plus",
		MonthlyPremiumCents: 28500,
		DeductibleCents:     150000,
		OutOfPocketMaxCents: 500000,
		CoverageType:        "Comprehensive",
		NetworkType:         "PPO",
		Benefits: []string{
			"Preventive care covered 100%",
			"Prescription drug coverage",
			"Specialist visits",
			"Emergency services",
			"Mental health support",
		},
	}, nil
}
