package factom_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBalanceReport(t *testing.T) {
	b, err := factom.ParseBalanceReport(
		"pre amble AliceCredits FA1abc 500 Entry Credit BobCredits EC2xyz 10")
	require.NoError(t, err)
	require.Len(t, b.Factoids, 1)
	require.Len(t, b.EntryCredits, 1)
	assert.Equal(t, "AliceCredits", b.Factoids["FA1abc"].Name)
	assert.True(t, decimal.NewFromInt(500).Equal(b.Factoids["FA1abc"].Amount))
	assert.Equal(t, "BobCredits", b.EntryCredits["EC2xyz"].Name)
	assert.True(t, decimal.NewFromInt(10).Equal(b.EntryCredits["EC2xyz"].Amount))
}

func TestParseBalanceReportMultiline(t *testing.T) {
	report := `Factoid Addresses
	alice FA1abc 12.5
	bob   FA2def 0
Entry Credit
	ec1 EC1aaa 300
	ec2 EC2bbb 7
`
	b, err := factom.ParseBalanceReport(report)
	require.NoError(t, err)
	assert.Len(t, b.Factoids, 2)
	assert.Len(t, b.EntryCredits, 2)
	assert.True(t, decimal.RequireFromString("12.5").
		Equal(b.Factoids["FA1abc"].Amount))
	assert.Equal(t, "ec2", b.EntryCredits["EC2bbb"].Name)
}

func TestParseBalanceReportEmptySections(t *testing.T) {
	b, err := factom.ParseBalanceReport("pre amble Entry Credit")
	require.NoError(t, err)
	assert.Empty(t, b.Factoids)
	assert.Empty(t, b.EntryCredits)
}

func TestParseBalanceReportMalformed(t *testing.T) {
	for name, report := range map[string]string{
		"Empty":             "",
		"PreambleOnly":      "pre amble",
		"NoMarker":          "pre amble alice FA1abc 500",
		"IncompleteFactoid": "pre amble alice FA1abc",
		"IncompleteCredit":  "pre amble Entry Credit bob EC2xyz",
		"DanglingCredit":    "pre amble Entry Credit bob EC2xyz 10 carol",
		"BadAmount":         "pre amble alice FA1abc lots Entry Credit",
		"BadCreditAmount":   "pre amble Entry Credit bob EC2xyz ten",
	} {
		report := report
		t.Run(name, func(t *testing.T) {
			_, err := factom.ParseBalanceReport(report)
			assert.True(t, errors.Is(err, factom.ErrMalformedBalanceReport),
				"%v", err)
		})
	}
}

func TestBalances(t *testing.T) {
	c, _, walletd := newTestClient(t)
	walletd.set("factoid-get-addresses/", `{"Response":`+
		`"Factoid Addresses alice FA1abc 2.5 Entry Credit ec EC1aaa 40",`+
		`"Success":true}`)
	b, err := c.Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GET", walletd.last().Method)
	assert.True(t, decimal.RequireFromString("2.5").
		Equal(b.Factoids["FA1abc"].Amount))
	assert.True(t, decimal.NewFromInt(40).Equal(b.EntryCredits["EC1aaa"].Amount))

	walletd.set("factoid-get-addresses/", `{"Response":"garbage","Success":true}`)
	_, err = c.Balances(context.Background())
	assert.True(t, errors.Is(err, factom.ErrMalformedBalanceReport))
}
