package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arcanum-sdk/client-go/internal/apierrors"
)

// parseErrorResponse builds the taxonomy error for a response with status
// >= 400. A JSON body contributes its "message" and "errors" keys; any other
// non-empty body is appended verbatim.
func parseErrorResponse(method, path string, resp *http.Response, body []byte, requestID string) error {
	d := apierrors.Details{
		StatusCode: resp.StatusCode,
		Message: fmt.Sprintf("API request failed: %s %s resulted in a %d %s response",
			method, path, resp.StatusCode, http.StatusText(resp.StatusCode)),
		RequestID: requestID,
	}

	var details any
	if err := json.Unmarshal(body, &details); err == nil {
		if obj, ok := details.(map[string]any); ok {
			if msg, ok := obj["message"]; ok && msg != nil {
				d.Message += " - API Message: " + stringify(msg)
			}
			if errs, ok := obj["errors"]; ok && errs != nil {
				d.Fields = fieldErrors(errs)
			}
		}
	} else if len(body) > 0 {
		d.Message += " - Response: " + string(body)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		d.RetryAfter = retryAfter(resp.Header.Get("Retry-After"), time.Now())
	}

	return apierrors.Classify(d)
}

// retryAfter reads a Retry-After value as delay seconds or as an HTTP date,
// which is converted to the seconds remaining (0 once it has passed). Any
// other value yields nil.
func retryAfter(v string, now time.Time) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		return &seconds
	}
	at, err := http.ParseTime(v)
	if err != nil {
		return nil
	}
	seconds := max(int(math.Ceil(at.Sub(now).Seconds())), 0)
	return &seconds
}

// fieldErrors flattens the server's "errors" value into field -> message.
// Lists of messages are joined with "; ".
func fieldErrors(v any) map[string]string {
	out := map[string]string{}
	switch errs := v.(type) {
	case map[string]any:
		for field, msg := range errs {
			out[field] = joinMessages(msg)
		}
	case []any:
		for i, msg := range errs {
			out[strconv.Itoa(i)] = joinMessages(msg)
		}
	default:
		out[""] = stringify(errs)
	}
	return out
}

func joinMessages(v any) string {
	list, ok := v.([]any)
	if !ok {
		return stringify(v)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, stringify(item))
	}
	return strings.Join(parts, "; ")
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+stringify(s[k]))
		}
		return strings.Join(parts, ", ")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
