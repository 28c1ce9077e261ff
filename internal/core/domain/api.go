package domain

import (
	"encoding/json"
	"net/url"
)

// APIRequest describes one call against the remote API.
type APIRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
	// Upload, when set, sends a multipart form instead of a JSON body.
	Upload *UploadRequest
	// Anonymous suppresses the Authorization header even when a session token exists.
	Anonymous bool
}

// APIResponse is a decoded envelope: {success, message, data}.
type APIResponse struct {
	Status  int
	Message string
	// Payload holds the raw JSON of the data field, or of the whole body when the
	// envelope carries no data field.
	Payload []byte
}

// Decode unmarshals the payload into v.
func (r *APIResponse) Decode(v any) error {
	if len(r.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return NewParseError(err)
	}
	return nil
}

// DecodeAs unmarshals the payload of resp into a new T.
func DecodeAs[T any](resp *APIResponse) (T, error) {
	var out T
	err := resp.Decode(&out)
	return out, err
}
