package outline

import "fmt"

// TransportError is a network or HTTP-level failure while calling the
// generative backend. Recoverable: the orchestrator counts it against the
// retry budget.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is a generative response that could not be turned into a valid
// outline: non-JSON body, a top-level value that is not an object, or an
// object that fails outline validation. Treated like TransportError for retry
// purposes.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm response %s: %v", e.Reason, e.Err)
	}
	return "llm response " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
