package swap

import "github.com/gin-gonic/gin"

type IHandler interface {
	CreateOrder(c *gin.Context)
	InitializeOrder(c *gin.Context)
	PollConsensus(c *gin.Context)
	ClaimOrder(c *gin.Context)
	RefundOrder(c *gin.Context)
	GetOrder(c *gin.Context)
	ListOrders(c *gin.Context)
}
