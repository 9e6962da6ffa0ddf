package vnpay

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangle2000/final-project-backend/apperr"
)

type initiateInput struct {
	OrderID   string `json:"order_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,min=1"`
	OrderDesc string `json:"order_desc" binding:"required"`
	OrderType string `json:"order_type" binding:"required"`
	BankCode  string `json:"bank_code"`
	Locale    string `json:"locale"`
}

// POST /payment/initiate
func InitiatePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input initiateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": []string{"invalid input"}})
			return
		}

		cfg := ConfigFromEnv()
		redirectURL, err := cfg.BuildPaymentURL(PaymentRequest{
			OrderID:    input.OrderID,
			Amount:     input.Amount,
			OrderDesc:  input.OrderDesc,
			OrderType:  input.OrderType,
			BankCode:   input.BankCode,
			Locale:     input.Locale,
			IPAddr:     c.ClientIP(),
			CreateDate: time.Now(),
		})
		if err != nil {
			log.Printf("payment initiate failed for order %s: %v", input.OrderID, err)
			c.JSON(apperr.HTTPStatus(err), gin.H{"status": "error", "errors": []string{apperr.ClientMessage(err)}})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"errors": []string{},
			"data":   gin.H{"payment_url": redirectURL},
		})
	}
}

// GET /payment/return — the gateway's return callback. The signature is
// verified before anything in the payload is trusted; a valid signature with
// a failing response code is still a verified (failed) payment.
func PaymentReturn() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := ConfigFromEnv()

		result, err := cfg.ValidateCallback(c.Request.URL.Query())
		if err != nil {
			log.Printf("payment callback rejected: %v", err)
			c.JSON(apperr.HTTPStatus(err), gin.H{
				"title":  "Payment result",
				"result": "error",
				"msg":    apperr.ClientMessage(err),
			})
			return
		}

		body := gin.H{
			"title":             "Payment result",
			"order_id":          result.OrderID,
			"amount":            result.Amount,
			"order_desc":        result.OrderDesc,
			"vnp_TransactionNo": result.TransactionNo,
			"vnp_ResponseCode":  result.ResponseCode,
		}
		if result.Success {
			body["result"] = "success"
		} else {
			body["result"] = "error"
			body["msg"] = "payment was not successful"
		}
		c.JSON(http.StatusOK, body)
	}
}
