package rest

import (
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	User    *models.Identity `json:"user,omitempty"`
}

type loginData struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"username"`
	Token    string `json:"token"`
}

type productList struct {
	Total    int              `json:"total"`
	Products []models.Product `json:"products"`
}

type healthData struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}
