package actor

import (
	"errors"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-actorrunner/pkg/value"
)

// ErrNotObject is returned when a response body is valid JSON but not an
// object.
var ErrNotObject = errors.New("actor: response body is not a JSON object")

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips markup from server supplied text so it can be shown in
// a terminal. Entities are decoded after sanitising.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(trimmed)))
}

// DecodeSchemaResult parses a successful schema response.
func DecodeSchemaResult(body []byte) (SchemaResult, error) {
	payload, err := decodeObject(body)
	if err != nil {
		return SchemaResult{}, err
	}

	schema, _ := payload.Get("schema")
	if schema.Kind() != value.KindObject {
		schema = value.Object()
	}

	result := SchemaResult{Schema: schema}
	if raw, ok := payload.Get("actorInfo"); ok && raw.Kind() == value.KindObject {
		result.Info = &Info{
			Title:       stringMember(raw, "title"),
			Description: SanitizeText(stringMember(raw, "description")),
		}
	}
	return result, nil
}

// DecodeRunResult parses a successful run response.
func DecodeRunResult(body []byte) (RunResult, error) {
	payload, err := decodeObject(body)
	if err != nil {
		return RunResult{}, err
	}
	return runResultFrom(payload), nil
}

// DecodeResponseError builds a ResponseError from a non-2xx response. Bodies
// that are not JSON objects yield an error without server messages.
func DecodeResponseError(status int, body []byte) *ResponseError {
	respErr := &ResponseError{StatusCode: status, Payload: value.Object()}
	payload, err := decodeObject(body)
	if err != nil {
		return respErr
	}
	respErr.Payload = payload
	respErr.Message = SanitizeText(stringMember(payload, "error"))
	respErr.StatusMessage = SanitizeText(stringMember(payload, "statusMessage"))
	respErr.RunID = stringMember(payload, "runId")
	return respErr
}

func decodeObject(body []byte) (value.Value, error) {
	payload, err := value.Parse(body)
	if err != nil {
		return value.Value{}, err
	}
	if payload.Kind() != value.KindObject {
		return value.Value{}, ErrNotObject
	}
	return payload, nil
}

func runResultFrom(payload value.Value) RunResult {
	result := RunResult{
		Status:  stringMember(payload, "status"),
		RunID:   stringMember(payload, "runId"),
		Payload: payload,
	}
	if results, ok := payload.Get("results"); ok {
		result.Results = results
	}
	if stats, ok := payload.Get("stats"); ok && stats.Kind() == value.KindObject {
		runtime, _ := stats.Get("runTimeSecs")
		result.Stats = &RunStats{RunTimeSecs: runtime.Num()}
	}
	if success, ok := payload.Get("success"); ok && success.Kind() == value.KindBoolean {
		b := success.Bool()
		result.Success = &b
	}
	if flag, ok := payload.Get("error"); ok && flag.Kind() == value.KindBoolean {
		result.Error = flag.Bool()
	}
	return result
}

func stringMember(obj value.Value, key string) string {
	v, ok := obj.Get(key)
	if !ok {
		return ""
	}
	switch v.Kind() {
	case value.KindString:
		return v.Str()
	case value.KindNumber:
		return value.FormatNumber(v.Num())
	default:
		return ""
	}
}
