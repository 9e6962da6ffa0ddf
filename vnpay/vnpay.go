// Package vnpay builds signed redirect URLs for the VNPay gateway and
// verifies the signature of return callbacks. The sort-encode-sign procedure
// must be byte-for-byte identical on both ends; any drift breaks every
// payment, so both directions share the same helpers.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sangle2000/final-project-backend/apperr"
)

const (
	Version             = "2.1.0"
	CommandPay          = "pay"
	CurrCode            = "VND"
	DefaultLocale       = "vn"
	ResponseCodeSuccess = "00"

	createDateFormat = "20060102150405" // YYYYMMDDHHMMSS

	hashParam     = "vnp_SecureHash"
	hashTypeParam = "vnp_SecureHashType"
)

type Config struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

func ConfigFromEnv() Config {
	return Config{
		TmnCode:    os.Getenv("VNP_TMN_CODE"),
		HashSecret: os.Getenv("VNP_HASH_SECRET"),
		PayURL:     os.Getenv("VNP_PAY_URL"),
		ReturnURL:  os.Getenv("VNP_RETURN_URL"),
	}
}

// PaymentRequest holds the order fields for one outbound redirect. It is
// transient; nothing here is persisted.
type PaymentRequest struct {
	OrderID    string
	Amount     int64 // minor currency units
	OrderDesc  string
	OrderType  string
	BankCode   string
	Locale     string
	IPAddr     string
	CreateDate time.Time
}

// CallbackResult reports a verified callback. Signed is always true when the
// result is returned without error; Success reflects the gateway's response
// code and is an orthogonal fact.
type CallbackResult struct {
	OrderID       string
	Amount        int64
	OrderDesc     string
	TransactionNo string
	ResponseCode  string
	Success       bool
}

// BuildPaymentURL assembles the gateway parameters, signs them and returns
// the full redirect URL with vnp_SecureHash appended.
func (cfg Config) BuildPaymentURL(req PaymentRequest) (string, error) {
	if cfg.HashSecret == "" {
		return "", apperr.New(apperr.Checksum, "payment hash secret is not configured")
	}
	if cfg.PayURL == "" || cfg.TmnCode == "" {
		return "", apperr.New(apperr.Internal, "payment gateway is not configured")
	}

	locale := req.Locale
	if locale == "" {
		locale = DefaultLocale
	}

	params := map[string]string{
		"vnp_Version":    Version,
		"vnp_Command":    CommandPay,
		"vnp_TmnCode":    cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(req.Amount*100, 10),
		"vnp_CurrCode":   CurrCode,
		"vnp_TxnRef":     req.OrderID,
		"vnp_OrderInfo":  req.OrderDesc,
		"vnp_OrderType":  req.OrderType,
		"vnp_Locale":     locale,
		"vnp_CreateDate": req.CreateDate.Format(createDateFormat),
		"vnp_IpAddr":     req.IPAddr,
		"vnp_ReturnUrl":  cfg.ReturnURL,
	}
	if req.BankCode != "" {
		params["vnp_BankCode"] = req.BankCode
	}

	encoded := encodeParams(params)
	signature := sign(cfg.HashSecret, encoded)

	return cfg.PayURL + "?" + encoded + "&" + hashParam + "=" + signature, nil
}

// ValidateCallback re-derives the signature over every field except the
// signature itself and compares in constant time. A mismatch is a Checksum
// error regardless of any "success" response code in the payload.
func (cfg Config) ValidateCallback(values url.Values) (*CallbackResult, error) {
	if cfg.HashSecret == "" {
		return nil, apperr.New(apperr.Checksum, "payment hash secret is not configured")
	}

	provided := values.Get(hashParam)
	if provided == "" {
		return nil, apperr.New(apperr.Checksum, "missing payment signature")
	}

	params := make(map[string]string, len(values))
	for key := range values {
		if key == hashParam || key == hashTypeParam {
			continue
		}
		params[key] = values.Get(key)
	}

	expected := sign(cfg.HashSecret, encodeParams(params))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(provided))) {
		return nil, apperr.New(apperr.Checksum, "payment signature mismatch")
	}

	amount, _ := strconv.ParseInt(values.Get("vnp_Amount"), 10, 64)
	responseCode := values.Get("vnp_ResponseCode")

	return &CallbackResult{
		OrderID:       values.Get("vnp_TxnRef"),
		Amount:        amount / 100,
		OrderDesc:     values.Get("vnp_OrderInfo"),
		TransactionNo: values.Get("vnp_TransactionNo"),
		ResponseCode:  responseCode,
		Success:       responseCode == ResponseCodeSuccess,
	}, nil
}

// encodeParams sorts keys, URL-encodes keys and values and joins them as a
// query string. Empty values are skipped on both ends.
func encodeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(params[key]))
	}
	return strings.Join(pairs, "&")
}

func sign(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
