package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCanonicalizesRules(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"allow ssh\n", "allow ssh"},
		{"deny   out   to 8.8.8.8   port 53 proto udp  # dns\n", "deny out to 8.8.8.8 port 53 proto udp"},
		{"allow in on eth0 from internal to external port 443 proto tcp\n", "allow in on eth0 from internal to external port 443 proto tcp"},
		{"limit port 22 from any\n", "limit from any port 22"},
	}
	for _, tc := range cases {
		rs, err := ParseRules(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		require.Len(t, rs, 1)
		assert.Equal(t, tc.want, Format(rs[0]), "input %q", tc.input)
	}
}

func TestFormatAllJoinsLines(t *testing.T) {
	rs, err := ParseRules("allow ssh\ndeny telnet\n")
	require.NoError(t, err)
	assert.Equal(t, "allow ssh\ndeny telnet\n", FormatAll(rs))
}

func TestFormattedOutputReparsesToSameRules(t *testing.T) {
	input := "# edge firewall\nallow in from internal to external port 443 proto tcp\nallow ssh\n"
	first, err := ParseRules(input)
	require.NoError(t, err)

	second, err := ParseRules(FormatAll(first))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
