package coinbase

const (
	Name = "≪coinbase-client≫"

	SandboxURL = "https://api-public.sandbox.pro.coinbase.com"
	LiveURL    = "https://api.pro.coinbase.com"

	DefaultUserAgent = "goose-coinbase-api"

	AccessKeyHeader        = "cb-access-key"
	AccessPassphraseHeader = "cb-access-passphrase"
	AccessTimestampHeader  = "cb-access-timestamp"
	AccessSignHeader       = "cb-access-sign"
)
