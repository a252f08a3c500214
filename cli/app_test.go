package cli

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `[{"id":"BTC-USD","base_currency":"BTC","quote_currency":"USD","base_min_size":"0.001","base_max_size":"10000.00","quote_increment":"0.01"}]`

func TestProductsAsCSV(t *testing.T) {
	isolateEnv(t)

	rt := newStubTransport().route("/products", http.StatusOK, productsBody)

	code, stdout, stderr := runApp(t, rt, "-format", "csv", "products")
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(
		t,
		"id,base_currency,quote_currency,base_min_size,base_max_size,quote_increment\n"+
			"BTC-USD,BTC,USD,0.001,10000.00,0.01\n",
		stdout,
	)
	assert.Equal(t, "https://api-public.sandbox.pro.coinbase.com/products", rt.last().URL.String())
}

func TestProductsAsText(t *testing.T) {
	isolateEnv(t)

	rt := newStubTransport().route("/products", http.StatusOK, productsBody)

	code, stdout, _ := runApp(t, rt, "-color=false", "products")
	require.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"BTC-USD", "BTC", "USD", "0.001", "10000.00", "0.01"}, strings.Fields(lines[1]))
}

func TestLiveEnvironmentIsUsedWhenConfigured(t *testing.T) {
	isolateEnv(t)
	t.Setenv("COINBASE_ENVIRONMENT", "live")

	rt := newStubTransport().route("/time", http.StatusOK, `{"iso":"2015-01-07T23:47:25.201Z","epoch":1420674445.201}`)

	code, stdout, _ := runApp(t, rt, "-format", "csv", "time")
	require.Equal(t, exitOK, code)

	assert.Equal(t, "https://api.pro.coinbase.com/time", rt.last().URL.String())
	assert.Equal(t, "iso,epoch\n2015-01-07T23:47:25.201Z,1420674445.201\n", stdout)
}

func TestUsageErrors(t *testing.T) {
	isolateEnv(t)

	cases := map[string][]string{
		"no command":             {},
		"unknown command":        {"withdraw"},
		"unknown format":         {"-format", "xml", "products"},
		"unknown book level":     {"book", "-level", "4"},
		"start without end":      {"candles", "-start", "2018-01-01T00:00:00Z"},
		"bad granularity":        {"candles", "-granularity", "2m"},
		"end before start":       {"candles", "-start", "2018-01-02T00:00:00Z", "-end", "2018-01-01T00:00:00Z"},
		"stray argument":         {"products", "extra"},
		"unknown command flag":   {"ticker", "-nope"},
		"account id not a uuid":  {"account", "-id", "1234"},
		"account id missing":     {"ledger"},
		"product and order":      {"fills", "-product", "BTC-USD", "-order", "68e6a28f-ae28-4788-8d4f-5ab4e5e5ae08"},
		"order id not a uuid":    {"order", "-id", "../accounts"},
		"fills order not a uuid": {"fills", "-order", "x"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			setCredentials(t)

			rt := newStubTransport()

			code, _, stderr := runApp(t, rt, args...)

			assert.Equal(t, exitUsage, code, stderr)
			assert.Empty(t, rt.uris(), "nothing should be sent for a usage error")
		})
	}
}

func TestPrivateCommandNeedsCredentials(t *testing.T) {
	isolateEnv(t)

	rt := newStubTransport()

	code, _, stderr := runApp(t, rt, "accounts")

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "COINBASE_API_KEY")
	assert.Empty(t, rt.uris())
}

func TestAccountsAreSigned(t *testing.T) {
	isolateEnv(t)
	setCredentials(t)

	rt := newStubTransport().route(
		"/accounts",
		http.StatusOK,
		`[{"id":"71452118-efc7-4cc4-8780-a5e22d4baa53","currency":"BTC","balance":"0.0000000000000000","available":"0.0000000000000000","hold":"0.0000000000000000","profile_id":"75da88c5-05bf-4f54-bc85-5c775bd68254"}]`,
	)

	code, stdout, stderr := runApp(t, rt, "-format", "csv", "accounts")
	require.Equal(t, exitOK, code, stderr)

	req := rt.last()
	assert.Equal(t, testKey, req.Header.Get("CB-ACCESS-KEY"))
	assert.Equal(t, testPassphrase, req.Header.Get("CB-ACCESS-PASSPHRASE"))
	assert.NotEmpty(t, req.Header.Get("CB-ACCESS-SIGN"))
	assert.NotEmpty(t, req.Header.Get("CB-ACCESS-TIMESTAMP"))

	assert.Contains(t, stdout, "71452118-efc7-4cc4-8780-a5e22d4baa53,BTC,0.0000000000000000")
	assert.NotContains(t, stderr, testSecret)
	assert.NotContains(t, stdout, testSecret)
}

func TestRejectionMessageIsShown(t *testing.T) {
	isolateEnv(t)
	setCredentials(t)

	rt := newStubTransport().route("/accounts", http.StatusUnauthorized, `{"message":"invalid signature"}`)

	code, stdout, stderr := runApp(t, rt, "accounts")

	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "status 401")
	assert.Contains(t, stderr, "invalid signature")
	assert.NotContains(t, stderr, testSecret)
	assert.NotContains(t, stderr, testPassphrase)
}

func TestFullBookAsCSV(t *testing.T) {
	isolateEnv(t)

	rt := newStubTransport().route(
		"/products/BTC-USD/book?level=3",
		http.StatusOK,
		`{"sequence":3,"bids":[["295.96","0.05","3b0f1225-7f84-490b-a29f-0faef9de823a"]],"asks":[["295.97","5.72","da863862-25f4-4868-ac41-005d11ab0a5f"]]}`,
	)

	code, stdout, stderr := runApp(t, rt, "-format", "csv", "book", "-level", "full")
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(
		t,
		"sequence,side,price,size,order_id\n"+
			"3,bid,295.96,0.05,3b0f1225-7f84-490b-a29f-0faef9de823a\n"+
			"3,ask,295.97,5.72,da863862-25f4-4868-ac41-005d11ab0a5f\n",
		stdout,
	)
}

func TestCandlesRange(t *testing.T) {
	isolateEnv(t)

	rt := newStubTransport().route(
		"/products/ETH-USD/candles?start=2018-01-01T00:00:00.000Z&end=2018-01-01T02:00:00.000Z&granularity=3600",
		http.StatusOK,
		`[[1514768400,740.1,745.2,741.3,744.4,120.5],[1514764800,735,742,736,741.3,98]]`,
	)

	code, stdout, stderr := runApp(
		t, rt,
		"-format", "csv",
		"candles", "-product", "ETH-USD", "-granularity", "1h",
		"-start", "2018-01-01T00:00:00Z", "-end", "2018-01-01T02:00:00Z",
	)
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(
		t,
		"start,low,high,open,close,volume\n"+
			"2018-01-01T01:00:00Z,740.1,745.2,741.3,744.4,120.5\n"+
			"2018-01-01T00:00:00Z,735,742,736,741.3,98\n",
		stdout,
	)
}

func TestLatestCandles(t *testing.T) {
	isolateEnv(t)

	rt := newStubTransport().route("/products/BTC-USD/candles?granularity=300", http.StatusOK, `[]`)

	code, stdout, stderr := runApp(t, rt, "-format", "csv", "candles", "-granularity", "5m")
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(t, "start,low,high,open,close,volume\n", stdout)
}

func TestFillsForOrder(t *testing.T) {
	isolateEnv(t)
	setCredentials(t)

	const orderID = "d0c5340b-6d6c-49d9-b567-48c4bfca13d2"

	rt := newStubTransport().route(
		"/fills?order_id="+orderID,
		http.StatusOK,
		`[{"trade_id":74,"product_id":"BTC-USD","price":"10.00","size":"0.01","order_id":"`+orderID+`","created_at":"2014-11-07T22:19:28.578544Z","liquidity":"T","fee":"0.00025","settled":true,"side":"buy"}]`,
	)

	code, stdout, stderr := runApp(t, rt, "-format", "csv", "fills", "-order", orderID)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "74,BTC-USD,"+orderID+",buy,10.00,0.01,0.00025,T,true,2014-11-07T22:19:28.578544Z")
}

func TestHelpIsNotAFailure(t *testing.T) {
	isolateEnv(t)

	code, _, stderr := runApp(t, newStubTransport(), "-h")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "trailing-volume")
}
