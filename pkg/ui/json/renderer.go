// Package json renders reports as indented JSON for scripts
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

type errorDoc struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messageDoc struct {
	Message string `json:"message"`
}

// Renderer writes one JSON document per call
type Renderer struct {
	enc *json.Encoder
}

// New creates a JSON renderer on output
func New(output io.Writer) (*Renderer, error) {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return &Renderer{enc: enc}, nil
}

// RenderResult encodes result as is
func (r *Renderer) RenderResult(result interface{}) error {
	return r.enc.Encode(result)
}

// RenderError encodes err with its code and details when it carries them
func (r *Renderer) RenderError(err error) error {
	doc := errorDoc{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		doc.Code = code
		if details := errors.GetErrorDetails(err); len(details) > 0 {
			doc.Details = details
		}
	}
	return r.enc.Encode(doc)
}

// RenderMessage encodes {"message": msg}
func (r *Renderer) RenderMessage(msg string) error {
	return r.enc.Encode(messageDoc{Message: msg})
}
