package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a response encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ContentType returns the media type written for f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// FormatFromAccept picks the response format from the request's Accept
// header. JSON is used unless a YAML media type is listed.
func FormatFromAccept(r *http.Request) Format {
	if r == nil {
		return FormatJSON
	}
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mt {
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return FormatYAML
		case "application/json":
			return FormatJSON
		}
	}
	return FormatJSON
}

// Respond writes data in the format negotiated from r.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if FormatFromAccept(r) == FormatYAML {
		RespondYAML(w, statusCode, data)
		return
	}
	RespondJSON(w, statusCode, data)
}

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, FormatJSON, statusCode, buf.Bytes())
}

// RespondYAML writes a YAML response with the given status code and data.
func RespondYAML(w http.ResponseWriter, statusCode int, data any) {
	b, err := marshalYAML(data)
	if err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, FormatYAML, statusCode, b)
}

// marshalYAML converts the panics yaml.Marshal raises for unsupported types
// into errors.
func marshalYAML(data any) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("yaml encoding: %v", r)
		}
	}()
	return yaml.Marshal(data)
}

func write(w http.ResponseWriter, f Format, statusCode int, body []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}
