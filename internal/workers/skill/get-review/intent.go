package getreview

import (
	stderrors "errors"

	"whiskey-reviewer/internal/common/errors"
)

// Intent is a skill intent this handler serves.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentGetReview
)

const intentNameGetReview = "GetReview"

var (
	ErrInvalidIntent = stderrors.New("invalid intent")
	ErrInvalidEvent  = stderrors.New("invalid event")
)

func (i Intent) String() string {
	switch i {
	case IntentGetReview:
		return intentNameGetReview
	default:
		return "Unknown"
	}
}

// ParseIntent maps the platform's intent name. Names are case-sensitive, as
// the platform sends them verbatim from the interaction model.
func ParseIntent(name string) (Intent, error) {
	switch name {
	case intentNameGetReview:
		return IntentGetReview, nil
	default:
		return IntentUnknown, errors.NewInvalidIntentError(name, ErrInvalidIntent)
	}
}
