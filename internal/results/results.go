// Package results defines the operation result envelope returned by every
// service method. Success and Failure are mutually exclusive event payloads;
// Error is reserved for infrastructure faults (a business rejection is a
// Failure payload with a nil Error).
package results

// OperationResult is the outcome of a single service operation.
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// HandlerResult pairs an outbound payload with the topic it is published on.
type HandlerResult struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// SuccessResult builds a success-only result.
func SuccessResult(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// FailureResult builds a failure-only result.
func FailureResult(payload any) OperationResult {
	return OperationResult{Failure: payload}
}

// MapToHandlerResults routes the result's payload to the matching topic.
// A result with neither payload (an intentional no-op) maps to nothing.
func (r OperationResult) MapToHandlerResults(successTopic, failureTopic string) []HandlerResult {
	switch {
	case r.Success != nil:
		return []HandlerResult{{Topic: successTopic, Payload: r.Success}}
	case r.Failure != nil:
		return []HandlerResult{{Topic: failureTopic, Payload: r.Failure}}
	default:
		return nil
	}
}
