package chronopay

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"chronopay-gw/internal/order"
	"chronopay-gw/internal/settings"
)

// RedirectForm is the auto-submitting POST that hands the customer over to
// the gateway's hosted payment page.
type RedirectForm struct {
	Name   string
	Method string
	URL    string
	Fields *Fields
}

// BuildRedirectForm assembles and signs the outbound fields for o. storeURL
// must end with a slash.
func BuildRedirectForm(st settings.Settings, o *order.Order, currencyCode, storeURL string) (*RedirectForm, error) {
	if o == nil {
		return nil, ErrNilOrder
	}
	gatewayURL, err := url.Parse(st.GatewayURL)
	if err != nil || !gatewayURL.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGatewayURL, st.GatewayURL)
	}

	addr := o.BillingAddress
	f := NewFields()
	f.Add(FieldProductID, st.ProductID)
	f.Add(FieldProductName, st.ProductName)
	f.Add(FieldProductPrice, FormatPrice(o.Total))
	f.Add(FieldProductCurrency, currencyCode)
	f.Add(FieldCallbackURL, storeURL+IPNPath)
	f.Add(FieldCallbackType, CallbackTypePost)
	f.Add(FieldOrderID, strconv.Itoa(o.ID))
	f.Add(FieldFirstName, addr.FirstName)
	f.Add(FieldLastName, addr.LastName)
	f.Add(FieldStreet, addr.Address1)
	f.Add(FieldCity, addr.City)
	f.Add(FieldZip, addr.ZipPostalCode)
	f.Add(FieldPhone, addr.PhoneNumber)
	f.Add(FieldEmail, addr.Email)
	if addr.StateAbbreviation != nil {
		f.Add(FieldState, *addr.StateAbbreviation)
	}
	if addr.CountryISO3 != nil {
		f.Add(FieldCountry, *addr.CountryISO3)
	}
	f.Add(FieldSign, CalcRequestSign(f, st.SharedSecret))

	return &RedirectForm{
		Name:   FormName,
		Method: http.MethodPost,
		URL:    gatewayURL.String(),
		Fields: f,
	}, nil
}

var redirectTmpl = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Redirecting to payment page</title></head>
<body onload="document.forms[{{.Name}}].submit()">
<form name="{{.Name}}" method="{{.Method}}" action="{{.URL}}">
{{- range .Inputs}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><input type="submit" value="Continue to payment"></noscript>
</form>
</body>
</html>
`))

type formInput struct {
	Name  string
	Value string
}

// Render writes the HTML page that posts the form on load.
func (rf *RedirectForm) Render(w io.Writer) error {
	inputs := make([]formInput, 0, rf.Fields.Len())
	for _, k := range rf.Fields.Keys() {
		inputs = append(inputs, formInput{Name: k, Value: rf.Fields.Get(k)})
	}
	return redirectTmpl.Execute(w, struct {
		Name   string
		Method string
		URL    string
		Inputs []formInput
	}{rf.Name, rf.Method, rf.URL, inputs})
}
