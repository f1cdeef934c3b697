package logparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleErrorLine = `[F:9.218.34.177|QQ:0]2021-12-11 23:48:25|ER||[coupon_svr.cpp:312][DJC-CF-1211212348-8RJKIC-529-425718][coupon][OPENID:oXy9z4abc]query coupon failed ret=-6712 stock empty`

func TestParseLine(t *testing.T) {
	t.Run("well-formed error line", func(t *testing.T) {
		line := ParseLine(sampleErrorLine)

		require.True(t, line.Parsed)
		assert.Equal(t, "9.218.34.177", line.RemoteIP)
		assert.Equal(t, "0", line.QQ)
		assert.Equal(t, LevelError, line.Level)
		assert.Equal(t, "coupon_svr.cpp", line.SourceFile)
		assert.Equal(t, 312, line.SourceLine)
		assert.Equal(t, "DJC-CF-1211212348-8RJKIC-529-425718", line.Serial)
		assert.Equal(t, "coupon", line.Module)
		assert.Equal(t, "oXy9z4abc", line.OpenID)
		assert.Equal(t, "query coupon failed ret=-6712 stock empty", line.Content)
		assert.Equal(t, sampleErrorLine, line.Raw)

		want := time.Date(2021, 12, 11, 23, 48, 25, 0, time.UTC)
		assert.Equal(t, want, line.Timestamp)
	})

	t.Run("info and warning levels", func(t *testing.T) {
		info := ParseLine(`[F:10.0.0.1|QQ:12345]2021-12-11 23:48:20|INF||[gateway.cpp:88][SER-1][gateway][OPENID:abc]request received`)
		warn := ParseLine(`[F:10.0.0.1|QQ:12345]2021-12-11 23:48:21|WRN||[gateway.cpp:91][SER-1][gateway][OPENID:abc]slow upstream 1200ms`)

		require.True(t, info.Parsed)
		require.True(t, warn.Parsed)
		assert.Equal(t, LevelInfo, info.Level)
		assert.Equal(t, LevelWarning, warn.Level)
	})

	t.Run("empty QQ and OpenID fields", func(t *testing.T) {
		line := ParseLine(`[F:1.2.3.4|QQ:]2021-12-11 23:48:25|ER||[a.cpp:1][][][OPENID:]boom`)

		require.True(t, line.Parsed)
		assert.Empty(t, line.QQ)
		assert.Empty(t, line.Serial)
		assert.Empty(t, line.Module)
		assert.Empty(t, line.OpenID)
		assert.Equal(t, "boom", line.Content)
	})

	t.Run("unmatched line keeps raw content", func(t *testing.T) {
		line := ParseLine("  stack trace frame #3  ")

		assert.False(t, line.Parsed)
		assert.Equal(t, LevelUnknown, line.Level)
		assert.Equal(t, "stack trace frame #3", line.Content)
		assert.Equal(t, "  stack trace frame #3  ", line.Raw)
	})
}

func TestParseSkipsBlankLines(t *testing.T) {
	text := sampleErrorLine + "\n\n   \nplain trailer\n"

	lines := Parse(text)

	require.Len(t, lines, 2)
	assert.True(t, lines[0].Parsed)
	assert.False(t, lines[1].Parsed)
}

func TestErrorsAndWarnings(t *testing.T) {
	lines := Parse(`[F:1.1.1.1|QQ:1]2021-12-11 23:48:20|INF||[a.cpp:1][S][m][OPENID:x]ok
[F:1.1.1.1|QQ:1]2021-12-11 23:48:21|WRN||[a.cpp:2][S][m][OPENID:x]careful
[F:1.1.1.1|QQ:1]2021-12-11 23:48:22|ER||[a.cpp:3][S][m][OPENID:x]broken`)

	assert.Len(t, Errors(lines), 1)
	assert.Len(t, Warnings(lines), 1)
	assert.Equal(t, "broken", Errors(lines)[0].Content)
}

func TestFilterByModule(t *testing.T) {
	lines := Parse(`[F:1.1.1.1|QQ:1]2021-12-11 23:48:20|ER||[a.cpp:1][S][app.coupon.available][OPENID:x]stock empty
[F:1.1.1.1|QQ:1]2021-12-11 23:48:21|ER||[b.cpp:2][S][app.pay.order][OPENID:x]charge failed
[F:1.1.1.1|QQ:1]2021-12-11 23:48:22|INF||[c.cpp:3][S][gateway][OPENID:x]ok`)

	t.Run("glob pattern", func(t *testing.T) {
		out, err := FilterByModule(lines, "app.coupon.*")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "stock empty", out[0].Content)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		out, err := FilterByModule(lines, "APP.PAY.*")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "app.pay.order", out[0].Module)
	})

	t.Run("no match", func(t *testing.T) {
		out, err := FilterByModule(lines, "login.*")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := FilterByModule(lines, "app.[")
		assert.Error(t, err)
	})
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "ret style code", content: "query failed ret=-6712 stock empty", want: "-6712"},
		{name: "bare code", content: "upstream returned -100013", want: "-100013"},
		{name: "first of several", content: "ret=-6712 then ret=-90001", want: "-6712"},
		{name: "single digit ignored", content: "offset -1 applied", want: ""},
		{name: "no code", content: "all good", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line := Line{Content: tc.content}
			assert.Equal(t, tc.want, line.ErrorCode())
		})
	}
}

func TestLevelSeverity(t *testing.T) {
	assert.Greater(t, LevelError.Severity(), LevelWarning.Severity())
	assert.Greater(t, LevelWarning.Severity(), LevelInfo.Severity())
	assert.Equal(t, 0, LevelUnknown.Severity())
}
