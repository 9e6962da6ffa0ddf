package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sangle2000/final-project-backend/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	TmnCode:    "TESTTMN1",
	HashSecret: "test-hash-secret",
	PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
	ReturnURL:  "http://localhost:8080/payment/return",
}

func testRequest() PaymentRequest {
	return PaymentRequest{
		OrderID:    "ORDER-1001",
		Amount:     150000,
		OrderDesc:  "Thanh toan don hang 1001",
		OrderType:  "other",
		IPAddr:     "127.0.0.1",
		CreateDate: time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC),
	}
}

func TestBuildPaymentURL(t *testing.T) {
	redirect, err := testConfig.BuildPaymentURL(testRequest())
	require.NoError(t, err)

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(redirect, testConfig.PayURL+"?"))

	query := parsed.Query()
	assert.Equal(t, "15000000", query.Get("vnp_Amount"), "amount is scaled by 100")
	assert.Equal(t, "ORDER-1001", query.Get("vnp_TxnRef"))
	assert.Equal(t, "20240520143000", query.Get("vnp_CreateDate"))
	assert.Equal(t, DefaultLocale, query.Get("vnp_Locale"), "locale defaults when unset")
	assert.NotEmpty(t, query.Get(hashParam))
	assert.False(t, query.Has("vnp_BankCode"), "empty bank code is omitted")
}

func TestBuildPaymentURLBankCodeAndLocale(t *testing.T) {
	req := testRequest()
	req.BankCode = "NCB"
	req.Locale = "en"

	redirect, err := testConfig.BuildPaymentURL(req)
	require.NoError(t, err)

	query, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "NCB", query.Query().Get("vnp_BankCode"))
	assert.Equal(t, "en", query.Query().Get("vnp_Locale"))
}

func TestBuildPaymentURLMissingSecret(t *testing.T) {
	cfg := testConfig
	cfg.HashSecret = ""

	_, err := cfg.BuildPaymentURL(testRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.Checksum, apperr.KindOf(err))
}

func TestValidateCallbackRoundTrip(t *testing.T) {
	// Fields the gateway would sign on its end, with the same procedure.
	params := map[string]string{
		"vnp_TmnCode":       testConfig.TmnCode,
		"vnp_Amount":        "15000000",
		"vnp_TxnRef":        "ORDER-1001",
		"vnp_OrderInfo":     "Thanh toan don hang 1001",
		"vnp_TransactionNo": "14226112",
		"vnp_ResponseCode":  "00",
	}
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	values.Set(hashParam, sign(testConfig.HashSecret, encodeParams(params)))

	result, err := testConfig.ValidateCallback(values)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ORDER-1001", result.OrderID)
	assert.Equal(t, int64(150000), result.Amount)
	assert.Equal(t, "14226112", result.TransactionNo)
	assert.Equal(t, "00", result.ResponseCode)
}

func TestValidateCallbackAcceptsBuiltURL(t *testing.T) {
	redirect, err := testConfig.BuildPaymentURL(testRequest())
	require.NoError(t, err)

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)

	result, err := testConfig.ValidateCallback(parsed.Query())
	require.NoError(t, err, "Initiate's own output must verify with the same secret")
	assert.Equal(t, "ORDER-1001", result.OrderID)
}

func TestValidateCallbackTamperedField(t *testing.T) {
	redirect, err := testConfig.BuildPaymentURL(testRequest())
	require.NoError(t, err)

	parsed, _ := url.Parse(redirect)
	values := parsed.Query()
	values.Set("vnp_Amount", "15000001") // one byte off

	_, err = testConfig.ValidateCallback(values)
	require.Error(t, err)
	assert.Equal(t, apperr.Checksum, apperr.KindOf(err))
}

func TestValidateCallbackWrongSecret(t *testing.T) {
	redirect, err := testConfig.BuildPaymentURL(testRequest())
	require.NoError(t, err)

	parsed, _ := url.Parse(redirect)
	cfg := testConfig
	cfg.HashSecret = "test-hash-secreT"

	_, err = cfg.ValidateCallback(parsed.Query())
	require.Error(t, err)
	assert.Equal(t, apperr.Checksum, apperr.KindOf(err))
}

func TestValidateCallbackMissingSignature(t *testing.T) {
	values := url.Values{}
	values.Set("vnp_TxnRef", "ORDER-1001")

	_, err := testConfig.ValidateCallback(values)
	require.Error(t, err)
	assert.Equal(t, apperr.Checksum, apperr.KindOf(err))
}

func TestValidateCallbackVerifiedButFailedPayment(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":        "ORDER-1002",
		"vnp_Amount":        "5000000",
		"vnp_TransactionNo": "14226113",
		"vnp_ResponseCode":  "24", // customer cancelled
	}
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	values.Set(hashParam, sign(testConfig.HashSecret, encodeParams(params)))

	result, err := testConfig.ValidateCallback(values)
	require.NoError(t, err, "a valid signature on a failed payment still verifies")
	assert.False(t, result.Success)
	assert.Equal(t, "24", result.ResponseCode)
}

func TestValidateCallbackUppercaseSignature(t *testing.T) {
	params := map[string]string{"vnp_TxnRef": "ORDER-1003", "vnp_ResponseCode": "00"}
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	values.Set(hashParam, strings.ToUpper(sign(testConfig.HashSecret, encodeParams(params))))

	_, err := testConfig.ValidateCallback(values)
	require.NoError(t, err)
}

func TestEncodeParamsDeterministic(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":  "ORDER-1",
		"vnp_Amount":  "100",
		"vnp_Command": "pay",
		"vnp_Empty":   "",
	}
	encoded := encodeParams(params)
	assert.Equal(t, "vnp_Amount=100&vnp_Command=pay&vnp_TxnRef=ORDER-1", encoded)
}
