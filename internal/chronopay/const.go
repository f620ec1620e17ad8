package chronopay

const (
	SystemName = "Payments.ChronoPay"

	// IPNPath is relative to the store location.
	IPNPath       = "Plugins/PaymentChronoPay/IPNHandler"
	ConfigurePath = "Admin/PaymentChronoPay/Configure"

	FormName = "ChronoPay"

	// CallbackTypePost asks the gateway to call back with an HTTP POST.
	CallbackTypePost = "P"
)

// Outbound form fields.
const (
	FieldProductID       = "product_id"
	FieldProductName     = "product_name"
	FieldProductPrice    = "product_price"
	FieldProductCurrency = "product_price_currency"
	FieldCallbackURL     = "cb_url"
	FieldCallbackType    = "cb_type"
	FieldOrderID         = "cs1"
	FieldFirstName       = "f_name"
	FieldLastName        = "s_name"
	FieldStreet          = "street"
	FieldCity            = "city"
	FieldZip             = "zip"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldState           = "state"
	FieldCountry         = "country"
	FieldSign            = "sign"
)

// Callback fields.
const (
	FieldCustomerID      = "customer_id"
	FieldTransactionID   = "transaction_id"
	FieldTransactionType = "transaction_type"
	FieldTotal           = "total"
)
