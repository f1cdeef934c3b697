package logservice

import (
	"bytes"
	"encoding/json"
	"strings"
)

// resultPrefix is the JavaScript assignment the gateway wraps its JSON in.
const resultPrefix = "var log_result="

// DecodeResponse unwraps the gateway's JavaScript-assignment response and
// joins the log entries it carries into plain text.
//
// Payload shape: {"result":[{"content":"<log line>"},...],...}. Entries
// without a content field are kept as their JSON form so nothing is
// silently dropped. Responses that don't match the convention are returned
// unchanged.
func DecodeResponse(content string) string {
	if !strings.HasPrefix(content, resultPrefix) {
		return content
	}

	jsonStr := strings.TrimPrefix(content, resultPrefix)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return content
	}

	resultRaw, ok := payload["result"]
	if !ok {
		return indentJSON(jsonStr)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(resultRaw, &items); err != nil {
		return indentJSON(jsonStr)
	}

	var logs []string
	for _, item := range items {
		if contentRaw, ok := item["content"]; ok {
			var line string
			if err := json.Unmarshal(contentRaw, &line); err == nil {
				logs = append(logs, line)
				continue
			}
		}
		if encoded, err := json.Marshal(item); err == nil {
			logs = append(logs, string(encoded))
		}
	}

	if len(logs) == 0 {
		return indentJSON(jsonStr)
	}

	return strings.Join(logs, "\n")
}

func indentJSON(jsonStr string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(jsonStr), "", "  "); err != nil {
		return jsonStr
	}
	return buf.String()
}
