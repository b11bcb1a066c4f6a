package generation

import "errors"

var (
	// ErrAuthorizationDeclined means no credential was selected. It is a
	// cancellation, not a failure, and must not be shown to the user as an error.
	ErrAuthorizationDeclined = errors.New("credential selection declined")

	// ErrGenerationFailed wraps every failure of the authorization check,
	// the provider call or the response normalization.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrMalformedSelection is returned (wrapped in ErrGenerationFailed) when
	// an incomplete selection reaches the client.
	ErrMalformedSelection = errors.New("malformed selection")

	// ErrNoFrontImage is the normalization failure for a response without a
	// usable front view.
	ErrNoFrontImage = errors.New("provider returned no front image")
)

// UserMessage is the only failure text ever shown to the user.
const UserMessage = "An error occurred during generation. Please ensure you have a valid API Key selected."

// IsCancelled reports whether err is a user-initiated cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrAuthorizationDeclined)
}
