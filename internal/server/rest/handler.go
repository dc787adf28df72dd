package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

// bindCredentials accepts JSON and urlencoded bodies. An empty body is the
// same as empty fields, which validation reports as missing credentials.
func bindCredentials(c *gin.Context) (models.Credentials, error) {
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil && !errors.Is(err, io.EOF) {
		return models.Credentials{}, common.ErrInvalidRequestBody
	}
	return creds, nil
}

func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()

	creds, err := bindCredentials(c)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	user, err := s.users.Register(ctx, creds)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	respond(c, http.StatusCreated, "registration successful", user)
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	creds, err := bindCredentials(c)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	res, err := s.users.Login(ctx, creds)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, "login successful", loginData{
		UserID:   res.User.ID,
		UserName: res.User.UserName,
		Token:    res.Token,
	})
}

func (s *Server) health(c *gin.Context) {
	respond(c, http.StatusOK, "API service is running", healthData{
		Status:    "ok",
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{Success: false, Message: msgNotFound})
}

func (s *Server) listProducts(c *gin.Context) {
	items, err := s.products.List(c.Request.Context())
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	resp := Response{
		Success: true,
		Message: "products fetched successfully",
		Data:    productList{Total: len(items), Products: items},
	}
	if id, ok := identityFrom(c); ok {
		resp.User = &id
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getProduct(c *gin.Context) {
	// a non-numeric id names a product that cannot exist
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, s.logger, common.ErrorNotFound)
		return
	}

	p, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	respond(c, http.StatusOK, "product fetched successfully", p)
}
