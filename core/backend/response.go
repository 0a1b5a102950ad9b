package backend

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/logger"
)

// request bodies are capped at 1MB
const maxBodySize = 1 << 20

var kindStatus = map[core.Kind]int{
	core.KindValidation:      http.StatusBadRequest,
	core.KindUnauthenticated: http.StatusUnauthorized,
	core.KindNotFound:        http.StatusNotFound,
	core.KindConflict:        http.StatusConflict,
	core.KindServer:          http.StatusInternalServerError,
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	if err := encoder.Encode(v); err != nil {
		logger.Default().WithError(err).Errorln("cannot encode response")
	}
}

// writeError converts err into its transport representation. This is the
// only place where error kinds become HTTP status codes. Server errors are
// logged with their cause; the client always receives the generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := core.KindOf(err)
	if kind == core.KindServer {
		logger.FromContext(r.Context()).WithError(err).Errorln("request failed")
	}
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, messageResponse{Message: core.MessageOf(err)})
}

// readBody reads and, when a schema id is given, validates the request
// body, then unmarshals it into out.
func (b *Backend) readBody(r *http.Request, schemaID string, out interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return core.ValidationError("cannot read request body")
	}
	if len(body) == 0 {
		return core.ValidationError("request body is missing")
	}
	if len(schemaID) > 0 {
		if err := b.validator.Validate(body, schemaID); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return core.ValidationError("invalid request body")
	}
	return nil
}
