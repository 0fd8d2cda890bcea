package calculator

// Kind classifies a rejected calculation.
type Kind string

const (
	KindInvalidQuantity     Kind = "invalid_quantity"
	KindInvalidPrice        Kind = "invalid_price"
	KindInvalidAveragePrice Kind = "invalid_average_price"
	KindTargetNotLower      Kind = "target_not_lower"
	KindUnreachableTarget   Kind = "unreachable_target"
)

// ValidationError is returned for every input the engine refuses to compute.
// Two ValidationErrors match under errors.Is when their kinds are equal, so
// callers can test against the Err* sentinels regardless of the message.
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidQuantity     = &ValidationError{Kind: KindInvalidQuantity, Message: "quantities must be greater than zero"}
	ErrInvalidPrice        = &ValidationError{Kind: KindInvalidPrice, Message: "prices must be greater than zero"}
	ErrInvalidAveragePrice = &ValidationError{Kind: KindInvalidAveragePrice, Message: "average prices must be greater than zero"}
	ErrTargetNotLower      = &ValidationError{Kind: KindTargetNotLower, Message: "target average must be lower than current average"}
	ErrUnreachableTarget   = &ValidationError{Kind: KindUnreachableTarget, Message: "target average cannot be reached with this purchase price"}
)

func invalid(kind Kind, msg string) error {
	return &ValidationError{Kind: kind, Message: msg}
}
