package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire format version. Clients pin against it and
// it only changes on breaking envelope changes.
const EnvelopeVersion = 1

// APIEnvelope wraps response bodies in a consistent structure.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Error message for simple failures"`
}

// APIErrorEnvelope wraps structured errors with code and details.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v" doc:"Envelope format version"`
	Success bool   `json:"success" doc:"Always false"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope.
// Structured APIErrors keep their code and details; any other error becomes
// a simple error string; everything else is success data.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if err, ok := v.(error); ok {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	success := len(status) > 0 && (status[0] == '2' || status[0] == '3')
	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: success,
		Data:    v,
	}, nil
}
