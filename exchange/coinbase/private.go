package coinbase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

//
// Credentials are the API key, base64 secret, and passphrase issued by Coinbase Pro. They print as
// redacted so that they cannot leak through logs or formatted errors.
//
type Credentials struct {
	Key        string
	Secret     string
	Passphrase string
}

func (o Credentials) String() string {
	return "coinbase.Credentials{REDACTED}"
}

func (o Credentials) GoString() string {
	return o.String()
}

//
// PrivateClient is the HTTP client for the authenticated private API. Every request is signed with
// a fresh timestamp. It holds no per-request state and is safe for concurrent use.
//
type PrivateClient struct {
	r          *requester
	key        string
	passphrase string
	signer     *Signer
	now        func() time.Time
}

//
// NewPrivateClient creates a new client for the provided environment. It fails if the environment
// is unknown, if the secret is not valid base64, or if the TLS transport cannot be built.
//
func NewPrivateClient(env Environment, creds Credentials, opts ...Option) (*PrivateClient, error) {
	signer, err := NewSigner(creds.Secret)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	r, err := newRequester(env, o)
	if err != nil {
		return nil, err
	}

	return &PrivateClient{
		r:          r,
		key:        creds.Key,
		passphrase: creds.Passphrase,
		signer:     signer,
		now:        o.now,
	}, nil
}

//
// authorize attaches the four cb-access headers. The timestamp is read once and used for both the
// header and the signature, and the signature covers the request URI exactly as it will be sent.
//
func (o *PrivateClient) authorize(req *http.Request) {
	timestamp := o.now().Unix()

	req.Header.Set(AccessKeyHeader, o.key)
	req.Header.Set(AccessPassphraseHeader, o.passphrase)
	req.Header.Set(AccessTimestampHeader, strconv.FormatInt(timestamp, 10))
	req.Header.Set(AccessSignHeader, o.signer.Sign(timestamp, req.Method, req.URL.RequestURI(), ""))
}

//
// Accounts lists the trading accounts of the profile.
//
func (o *PrivateClient) Accounts(ctx context.Context) ([]Account, error) {
	return fetch[[]Account](ctx, o.r, "/accounts", o.authorize)
}

//
// Account retrieves a single trading account.
//
func (o *PrivateClient) Account(ctx context.Context, accountID string) (*Account, error) {
	return fetchOne[Account](ctx, o.r, "/accounts/"+url.PathEscape(accountID), o.authorize)
}

//
// Ledger lists the activity (transfers, matches, fees, rebates) of an account.
//
func (o *PrivateClient) Ledger(ctx context.Context, accountID string) ([]Activity, error) {
	return fetch[[]Activity](ctx, o.r, "/accounts/"+url.PathEscape(accountID)+"/ledger", o.authorize)
}

//
// Holds lists the holds placed on an account's funds.
//
func (o *PrivateClient) Holds(ctx context.Context, accountID string) ([]Hold, error) {
	return fetch[[]Hold](ctx, o.r, "/accounts/"+url.PathEscape(accountID)+"/holds", o.authorize)
}

//
// Orders lists orders of every status.
//
func (o *PrivateClient) Orders(ctx context.Context) ([]Order, error) {
	return fetch[[]Order](ctx, o.r, "/orders?status=all", o.authorize)
}

//
// OrdersForProduct lists orders of every status on one product.
//
func (o *PrivateClient) OrdersForProduct(ctx context.Context, productID string) ([]Order, error) {
	return fetch[[]Order](ctx, o.r, "/orders?status=all&product_id="+url.QueryEscape(productID), o.authorize)
}

//
// Order retrieves a single order.
//
func (o *PrivateClient) Order(ctx context.Context, orderID string) (*Order, error) {
	return fetchOne[Order](ctx, o.r, "/orders/"+url.PathEscape(orderID), o.authorize)
}

//
// Fills lists recent fills across every product.
//
func (o *PrivateClient) Fills(ctx context.Context) ([]Fill, error) {
	return fetch[[]Fill](ctx, o.r, "/fills", o.authorize)
}

//
// FillsForProduct lists recent fills on one product.
//
func (o *PrivateClient) FillsForProduct(ctx context.Context, productID string) ([]Fill, error) {
	return fetch[[]Fill](ctx, o.r, "/fills?product_id="+url.QueryEscape(productID), o.authorize)
}

//
// FillsForOrder lists the fills of one order.
//
func (o *PrivateClient) FillsForOrder(ctx context.Context, orderID string) ([]Fill, error) {
	return fetch[[]Fill](ctx, o.r, "/fills?order_id="+url.QueryEscape(orderID), o.authorize)
}

//
// TrailingVolume retrieves the caller's 30 day trailing volume per product.
//
func (o *PrivateClient) TrailingVolume(ctx context.Context) ([]TrailingVolume, error) {
	return fetch[[]TrailingVolume](ctx, o.r, "/users/self/trailing-volume", o.authorize)
}
