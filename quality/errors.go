package quality

import "errors"

var (
	// ErrCompleterRequired is returned when a completer is not provided.
	ErrCompleterRequired = errors.New("completer required")

	// ErrMalformedReply indicates the model reply could not be parsed as the
	// expected {"score": float} schema. Treated as an item-level failure.
	ErrMalformedReply = errors.New("malformed score reply")
)
