package httputil

import (
	"encoding/json"
	"net/http"

	"gopkg.in/yaml.v3"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeYAML    = "application/yaml"
	contentTypeText    = "text/plain; charset=utf-8"
	contentTypeProblem = "application/problem+json"
)

// problemTypes maps the statuses the vault API answers with to their RFC
// sections. Anything else is "about:blank".
var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.1",
	http.StatusUnauthorized:        "https://datatracker.ietf.org/doc/html/rfc7235#section-3.1",
	http.StatusForbidden:           "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.3",
	http.StatusNotFound:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.4",
	http.StatusConflict:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.8",
	http.StatusInternalServerError: "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.1",
	http.StatusBadGateway:          "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.3",
}

// write sends a fully encoded body. Encoding always happens before headers go
// out so a marshal failure can still become a clean 500.
func write(w http.ResponseWriter, status int, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// RespondJSON writes data as JSON.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, contentTypeJSON, payload)
}

// RespondYAML writes data as YAML (tree export).
func RespondYAML(w http.ResponseWriter, status int, data interface{}) {
	payload, err := yaml.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, contentTypeYAML, payload)
}

// RespondText writes a plain-text body (rendered tree, fallbacks).
func RespondText(w http.ResponseWriter, status int, text string) {
	write(w, status, contentTypeText, []byte(text))
}

// RespondError writes an RFC 7807 problem response.
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondErrorWithExtras(w, status, detail, nil)
}

// RespondErrorWithExtras writes an RFC 7807 problem response with additional
// top-level members, e.g. the applied/failed/remaining lists of a stopped
// cascade. Extras never override the standard members.
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]interface{}) {
	problem := make(map[string]interface{}, len(extras)+4)
	for k, v := range extras {
		problem[k] = v
	}

	problemType, ok := problemTypes[status]
	if !ok {
		problemType = "about:blank"
	}
	problem["type"] = problemType
	problem["title"] = http.StatusText(status)
	problem["status"] = status
	if detail != "" {
		problem["detail"] = detail
	}

	payload, err := json.Marshal(problem)
	if err != nil {
		RespondText(w, http.StatusInternalServerError, "internal server error")
		return
	}
	write(w, status, contentTypeProblem, payload)
}
