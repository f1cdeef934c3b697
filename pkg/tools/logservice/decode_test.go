package logservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeResponse(t *testing.T) {
	t.Run("joins content fields", func(t *testing.T) {
		raw := `var log_result={"ret":0,"result":[{"content":"line one"},{"content":"line two"}]}`

		assert.Equal(t, "line one\nline two", DecodeResponse(raw))
	})

	t.Run("entries without content are kept as JSON", func(t *testing.T) {
		raw := `var log_result={"result":[{"content":"line one"},{"level":"ER","ts":123}]}`

		out := DecodeResponse(raw)
		assert.Contains(t, out, "line one")
		assert.Contains(t, out, `"level":"ER"`)
	})

	t.Run("no prefix passes through unchanged", func(t *testing.T) {
		raw := "plain text body"
		assert.Equal(t, raw, DecodeResponse(raw))
	})

	t.Run("invalid JSON passes through unchanged", func(t *testing.T) {
		raw := `var log_result={not json`
		assert.Equal(t, raw, DecodeResponse(raw))
	})

	t.Run("missing result key is indented", func(t *testing.T) {
		raw := `var log_result={"ret":0,"msg":"ok"}`

		out := DecodeResponse(raw)
		assert.Contains(t, out, `"ret": 0`)
		assert.Contains(t, out, `"msg": "ok"`)
	})

	t.Run("empty result list falls back to indented JSON", func(t *testing.T) {
		raw := `var log_result={"ret":0,"result":[]}`

		out := DecodeResponse(raw)
		assert.Contains(t, out, `"result": []`)
	})
}

func TestPlatformFor(t *testing.T) {
	tests := []struct {
		eventID string
		want    string
	}{
		{eventID: "DJC-CF-1211212348-8RJKIC-529-425718", want: "DJC"},
		{eventID: "XINYUE-AB-123", want: "XINYUE"},
		{eventID: "noprefix", want: DefaultPlatform},
		{eventID: "-leadingdash", want: DefaultPlatform},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, PlatformFor(tc.eventID), tc.eventID)
	}
}
