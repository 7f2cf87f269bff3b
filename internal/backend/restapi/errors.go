package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"taskman/internal/service"
)

// parseError turns a non-2xx body into an APIError.
//
// The API reports failures either as {"detail": "..."} or as a map of
// field name to message list. Messages keep the order the server sent them.
func parseError(status int, body []byte) *service.APIError {
	apiErr := &service.APIError{Status: status}

	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return apiErr
	}

	switch tok {
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return apiErr
			}
			key, _ := keyTok.(string)

			var v any
			if err := dec.Decode(&v); err != nil {
				return apiErr
			}
			if s, ok := v.(string); ok && key == "detail" {
				apiErr.Detail = s
			}
			apiErr.Messages = append(apiErr.Messages, flatten(v)...)
		}
	case json.Delim('['):
		for dec.More() {
			var v any
			if err := dec.Decode(&v); err != nil {
				return apiErr
			}
			apiErr.Messages = append(apiErr.Messages, flatten(v)...)
		}
	case nil:
	default:
		if s, ok := tok.(string); ok {
			apiErr.Messages = append(apiErr.Messages, s)
		}
	}
	return apiErr
}

func flatten(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return []string{x}
	case []any:
		var out []string
		for _, item := range x {
			out = append(out, flatten(item)...)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, flatten(x[k])...)
		}
		return out
	default:
		return []string{fmt.Sprint(x)}
	}
}
