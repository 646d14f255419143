package grammar

import (
	"errors"
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Standalone parsers for individual productions, so each grammar rule can be
// exercised in isolation.
var (
	actionParser   = participle.MustBuild[Action](opts...)
	dirParser      = participle.MustBuild[Direction](opts...)
	addrParser     = participle.MustBuild[AddrText](opts...)
	ifaceParser    = participle.MustBuild[IfaceClause](opts...)
	clauseParser   = participle.MustBuild[Clause](opts...)
	svcRuleParser  = participle.MustBuild[ServiceRule](opts...)
	addrRuleParser = participle.MustBuild[AddrRule](opts...)
)

func TestActionParsesValidKeywords(t *testing.T) {
	for _, text := range []string{"allow", "deny", "reject", "limit"} {
		node, err := actionParser.ParseString("", text)
		require.NoError(t, err, "action %q", text)
		assert.Equal(t, text, node.Text)
	}

	_, err := actionParser.ParseString("", "block")
	assert.Error(t, err)
}

func TestDirectionParsesInAndOut(t *testing.T) {
	in, err := dirParser.ParseString("", "in")
	require.NoError(t, err)
	assert.Equal(t, "in", in.Text)

	out, err := dirParser.ParseString("", "out")
	require.NoError(t, err)
	assert.Equal(t, "out", out.Text)

	_, err = dirParser.ParseString("", "both")
	assert.Error(t, err)
}

func TestAddrParsesKeywordsAndIPs(t *testing.T) {
	for _, text := range []string{"any", "internal", "external", "10.0.0.1", "10.0.0.0/24"} {
		node, err := addrParser.ParseString("", text)
		require.NoError(t, err, "addr %q", text)
		assert.Equal(t, text, node.Text)
	}
}

func TestInterfaceClauseParsesIdentifier(t *testing.T) {
	node, err := ifaceParser.ParseString("", "on eth0")
	require.NoError(t, err)
	assert.Equal(t, "eth0", node.Name)

	_, err = ifaceParser.ParseString("", "on")
	assert.Error(t, err)
}

func TestPortClauseParsesNumber(t *testing.T) {
	node, err := clauseParser.ParseString("", "port 22")
	require.NoError(t, err)
	require.NotNil(t, node.Port)
	assert.Equal(t, "22", *node.Port)

	// Out-of-range digits are still grammar-valid; the range check is a
	// lowering concern.
	node, err = clauseParser.ParseString("", "port 65535")
	require.NoError(t, err)
	assert.Equal(t, "65535", *node.Port)

	_, err = clauseParser.ParseString("", "port x")
	assert.Error(t, err)
}

func TestProtoClauseParsesValues(t *testing.T) {
	for _, text := range []string{"tcp", "udp", "any"} {
		node, err := clauseParser.ParseString("", "proto "+text)
		require.NoError(t, err, "proto %q", text)
		require.NotNil(t, node.Proto)
		assert.Equal(t, text, *node.Proto)
	}

	_, err := clauseParser.ParseString("", "proto icmp")
	assert.Error(t, err)
}

func TestFromAndToClausesRequireAddress(t *testing.T) {
	node, err := clauseParser.ParseString("", "from internal")
	require.NoError(t, err)
	require.NotNil(t, node.From)
	assert.Equal(t, "internal", node.From.Text)

	node, err = clauseParser.ParseString("", "to any")
	require.NoError(t, err)
	require.NotNil(t, node.To)
	assert.Equal(t, "any", node.To.Text)

	_, err = clauseParser.ParseString("", "from")
	assert.Error(t, err)
}

func TestServiceRuleParsesBasicService(t *testing.T) {
	node, err := svcRuleParser.ParseString("", "allow ssh")
	require.NoError(t, err)
	assert.Equal(t, "allow", node.Action.Text)
	assert.Equal(t, "ssh", node.Service)
}

func TestServiceRuleIdentAllowsDigitsAndDashes(t *testing.T) {
	node, err := svcRuleParser.ParseString("", "allow ssh-service1")
	require.NoError(t, err)
	assert.Equal(t, "ssh-service1", node.Service)
}

func TestAddrRuleParsesComplexSyntax(t *testing.T) {
	node, err := addrRuleParser.ParseString("", "allow in from internal to external port 443 proto tcp")
	require.NoError(t, err)
	assert.Equal(t, "allow", node.Action.Text)
	require.NotNil(t, node.Direction)
	assert.Equal(t, "in", node.Direction.Text)
	assert.Nil(t, node.Interface)
	require.Len(t, node.Clauses, 4)
	assert.Equal(t, "internal", node.Clauses[0].From.Text)
	assert.Equal(t, "external", node.Clauses[1].To.Text)
	assert.Equal(t, "443", *node.Clauses[2].Port)
	assert.Equal(t, "tcp", *node.Clauses[3].Proto)
}

func TestAddrRuleRequiresAtLeastOneClause(t *testing.T) {
	for _, text := range []string{"allow in", "allow in on eth0", "deny on wlan0"} {
		_, err := addrRuleParser.ParseString("", text)
		assert.Error(t, err, "input %q", text)
	}
}

func TestFileParsesMultipleLinesWithComments(t *testing.T) {
	input := `
# incoming HTTPS from internal to external
allow in from internal to external port 443 proto tcp  # https

# DNS queries to an external resolver
deny out to 8.8.8.8 port 53 proto udp
allow ssh
`
	file, err := Parse("test", input)
	require.NoError(t, err)
	require.Len(t, file.Lines, 3)
	assert.NotNil(t, file.Lines[0].Address)
	assert.NotNil(t, file.Lines[1].Address)
	assert.NotNil(t, file.Lines[2].Service)
}

func TestFileAcceptsCRLFAndEmptyInput(t *testing.T) {
	file, err := Parse("test", "allow ssh\r\ndeny telnet\r\n")
	require.NoError(t, err)
	assert.Len(t, file.Lines, 2)

	file, err = Parse("test", "")
	require.NoError(t, err)
	assert.Empty(t, file.Lines)
}

func TestFileRejectsUnterminatedFinalLine(t *testing.T) {
	_, err := Parse("test", "allow ssh")
	require.Error(t, err)

	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Line)
}

func TestSyntaxErrorCarriesPosition(t *testing.T) {
	_, err := Parse("test", "allow ssh\nbogus $$ line\n")
	require.Error(t, err)

	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Line)
	assert.NotEmpty(t, serr.Message)
}
