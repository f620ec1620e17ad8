package chronopay

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callbackFields(sign string) *Fields {
	f := NewFields()
	f.Add(FieldSign, sign)
	f.Add(FieldCustomerID, "cust1")
	f.Add(FieldTransactionID, "tx1")
	f.Add(FieldTransactionType, "sale")
	f.Add(FieldTotal, "9.99")
	return f
}

func TestMD5Hex(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", MD5Hex(""))
	assert.Equal(t, "2966dc2ad280bf473feb51295c2eb7bd", MD5Hex("ABC123-19.99-s3cr3t"))
	assert.Len(t, MD5Hex("anything"), 32)
	assert.Regexp(t, `^[0-9a-f]{32}$`, MD5Hex("ÄÖÜ ünïcode"))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(3), "3.00"},
		{decimal.NewFromFloat(19.995), "20.00"},
		{decimal.RequireFromString("19.994"), "19.99"},
		{decimal.RequireFromString("0.005"), "0.01"},
		{decimal.RequireFromString("1234567.5"), "1234567.50"},
		{decimal.Zero, "0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in), tt.in.String())
	}
}

func TestSign(t *testing.T) {
	t.Run("Known digest", func(t *testing.T) {
		assert.Equal(t, "2966dc2ad280bf473feb51295c2eb7bd", Sign("ABC123", "19.99", "s3cr3t"))
		assert.Equal(t, MD5Hex("ABC123-19.99-s3cr3t"), Sign("ABC123", "19.99", "s3cr3t"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, Sign("p", "1.00", "k"), Sign("p", "1.00", "k"))
	})

	t.Run("Empty inputs still sign", func(t *testing.T) {
		assert.Equal(t, "cfab1ba8c67c7c838db98d666f02a132", Sign("", "", ""))
	})
}

func TestCalcRequestSign(t *testing.T) {
	t.Run("Reads product fields only", func(t *testing.T) {
		f := NewFields()
		f.Add(FieldProductID, "ABC123")
		f.Add(FieldProductName, "ignored")
		f.Add(FieldProductPrice, "19.99")

		assert.Equal(t, "2966dc2ad280bf473feb51295c2eb7bd", CalcRequestSign(f, "s3cr3t"))
	})

	t.Run("Absent fields are empty", func(t *testing.T) {
		assert.Equal(t, MD5Hex("--s3cr3t"), CalcRequestSign(NewFields(), "s3cr3t"))
		assert.Equal(t, MD5Hex("--s3cr3t"), CalcRequestSign(nil, "s3cr3t"))
	})
}

func TestValidateResponseSign(t *testing.T) {
	const secret = "s3cr3t"
	valid := MD5Hex("s3cr3t" + "cust1" + "tx1" + "sale" + "9.99")

	t.Run("Accepts matching signature", func(t *testing.T) {
		assert.Equal(t, "a526adacf2c231e95a6d7bd3d50f2783", valid)
		assert.True(t, ValidateResponseSign(callbackFields(valid), secret))
	})

	t.Run("Rejects changed total", func(t *testing.T) {
		f := callbackFields(valid)
		f.Add(FieldTotal, "10.99")
		assert.False(t, ValidateResponseSign(f, secret))
	})

	t.Run("Rejects wrong secret", func(t *testing.T) {
		assert.False(t, ValidateResponseSign(callbackFields(valid), "other"))
	})

	t.Run("Rejects missing or empty sign", func(t *testing.T) {
		f := callbackFields("")
		assert.False(t, ValidateResponseSign(f, secret))

		noSign := NewFields()
		noSign.Add(FieldCustomerID, "cust1")
		assert.False(t, ValidateResponseSign(noSign, secret))
		assert.False(t, ValidateResponseSign(NewFields(), ""))
		assert.False(t, ValidateResponseSign(nil, secret))
	})

	t.Run("Rejects single character mutation", func(t *testing.T) {
		for i := 0; i < len(valid); i++ {
			b := []byte(valid)
			if b[i] == '0' {
				b[i] = '1'
			} else {
				b[i] = '0'
			}
			assert.False(t, ValidateResponseSign(callbackFields(string(b)), secret), "position %d", i)
		}
	})

	t.Run("Rejects upper-case digest", func(t *testing.T) {
		upper := "A526ADACF2C231E95A6D7BD3D50F2783"
		assert.False(t, ValidateResponseSign(callbackFields(upper), secret))
	})

	t.Run("Absent fields are empty", func(t *testing.T) {
		f := NewFields()
		f.Add(FieldSign, MD5Hex(secret))
		assert.True(t, ValidateResponseSign(f, secret))
	})

	t.Run("Outbound signature is not accepted inbound", func(t *testing.T) {
		f := callbackFields(Sign("cust1", "9.99", secret))
		assert.False(t, ValidateResponseSign(f, secret))
	})
}

func TestValidateResponseSign_FromForm(t *testing.T) {
	form := url.Values{}
	form.Set(FieldCustomerID, "cust1")
	form.Set(FieldTransactionID, "tx1")
	form.Set(FieldTransactionType, "sale")
	form.Set(FieldTotal, "9.99")
	form.Set(FieldOrderID, "42")
	form.Set(FieldSign, "a526adacf2c231e95a6d7bd3d50f2783")

	f := FieldsFromForm(form)
	require.Equal(t, 6, f.Len())
	assert.True(t, ValidateResponseSign(f, "s3cr3t"))
}
