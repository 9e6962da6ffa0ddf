package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangle2000/final-project-backend/middleware"
	"github.com/sangle2000/final-project-backend/vnpay"
)

// SetupPaymentRoutes registers the payment endpoints. Initiation is
// identity-scoped; the return callback is hit by the gateway and relies on
// signature verification instead of a bearer token.
func SetupPaymentRoutes(r *gin.Engine) {
	payment := r.Group("/payment")
	{
		payment.POST("/initiate", middleware.ValidateToken, vnpay.InitiatePayment()) // POST /payment/initiate
		payment.GET("/return", vnpay.PaymentReturn())                                // GET /payment/return
	}
}
