package chronopay

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"

	"github.com/shopspring/decimal"
)

// MD5Hex returns the lower-case hex MD5 digest of the UTF-8 bytes of s.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// FormatPrice renders amount with exactly two decimals and a '.' separator,
// rounding half away from zero.
func FormatPrice(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Sign computes the outbound request signature over
// productID-productPrice-secret.
func Sign(productID, productPrice, secret string) string {
	return MD5Hex(productID + "-" + productPrice + "-" + secret)
}

// CalcRequestSign signs the product_id and product_price entries of f.
func CalcRequestSign(f *Fields, secret string) string {
	return Sign(f.Get(FieldProductID), f.Get(FieldProductPrice), secret)
}

// ExpectedResponseSign is the signature the gateway must send back for f.
func ExpectedResponseSign(f *Fields, secret string) string {
	return MD5Hex(secret +
		f.Get(FieldCustomerID) +
		f.Get(FieldTransactionID) +
		f.Get(FieldTransactionType) +
		f.Get(FieldTotal))
}

// ValidateResponseSign reports whether the callback fields carry a signature
// matching the shared secret. A missing or empty sign never validates.
func ValidateResponseSign(f *Fields, secret string) bool {
	got := f.Get(FieldSign)
	if got == "" {
		return false
	}
	want := ExpectedResponseSign(f, secret)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
