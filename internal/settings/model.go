package settings

import "github.com/shopspring/decimal"

const DefaultGatewayURL = "https://secure.chronopay.com/index_shop.cgi"

// Settings is the merchant configuration of the ChronoPay method. It is loaded
// per operation and passed by value.
type Settings struct {
	GatewayURL    string          `json:"gateway_url"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SharedSecret  string          `json:"shared_secret"`
	AdditionalFee decimal.Decimal `json:"additional_fee"`
}

// Defaults are the values written on install.
func Defaults() Settings {
	return Settings{
		GatewayURL:    DefaultGatewayURL,
		AdditionalFee: decimal.Zero,
	}
}

// setting keys in payment_settings
const (
	keyPrefix        = "chronopay."
	keyGatewayURL    = keyPrefix + "gatewayurl"
	keyProductID     = keyPrefix + "productid"
	keyProductName   = keyPrefix + "productname"
	keySharedSecret  = keyPrefix + "sharedsecret"
	keyAdditionalFee = keyPrefix + "additionalfee"
)
