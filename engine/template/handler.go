package template

import (
	"github.com/gin-gonic/gin"
	"github.com/teamdesk/teamdesk/engine/infra/mongostore"
	"github.com/teamdesk/teamdesk/engine/infra/server"
)

// Handler adapts HTTP requests to the template service. The service is
// built per request so it carries that request's operation context.
type Handler struct {
	service func(c *gin.Context) *Service
}

func NewHandler(store *mongostore.Store) *Handler {
	return &Handler{service: func(c *gin.Context) *Service {
		return NewService(store, server.BuildOptions(c, store.Database()))
	}}
}

func (h *Handler) create(c *gin.Context) {
	var input Input
	if err := c.ShouldBindJSON(&input); err != nil {
		server.BindError(c, err)
		return
	}
	record, err := h.service(c).Create(c.Request.Context(), &input)
	if err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, record)
}

func (h *Handler) update(c *gin.Context) {
	var input Input
	if err := c.ShouldBindJSON(&input); err != nil {
		server.BindError(c, err)
		return
	}
	record, err := h.service(c).Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, record)
}

type destroyQuery struct {
	IDs []string `form:"ids[]"`
}

func (h *Handler) destroy(c *gin.Context) {
	var query destroyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		server.BindError(c, err)
		return
	}
	if err := h.service(c).DestroyAll(c.Request.Context(), query.IDs); err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, nil)
}

type accessBody struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func (h *Handler) access(c *gin.Context) {
	var body accessBody
	if err := c.ShouldBindJSON(&body); err != nil {
		server.BindError(c, err)
		return
	}
	if err := h.service(c).AccessAll(c.Request.Context(), body.IDs); err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, nil)
}

func (h *Handler) find(c *gin.Context) {
	record, err := h.service(c).FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, record)
}

// count is the list query in count-only mode: filters apply, no rows
// are fetched or returned.
func (h *Handler) count(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		server.BindError(c, err)
		return
	}
	query.CountOnly = true
	result, err := h.service(c).FindAndCountAll(c.Request.Context(), &query)
	if err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, result)
}

func (h *Handler) list(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		server.BindError(c, err)
		return
	}
	result, err := h.service(c).FindAndCountAll(c.Request.Context(), &query)
	if err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, result)
}

type autocompleteQuery struct {
	Query string `form:"query"`
	Limit int64  `form:"limit"`
}

func (h *Handler) autocomplete(c *gin.Context) {
	var query autocompleteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		server.BindError(c, err)
		return
	}
	items, err := h.service(c).FindAllAutocomplete(c.Request.Context(), query.Query, query.Limit)
	if err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, items)
}

func (h *Handler) importOne(c *gin.Context) {
	var body struct {
		Data       Input  `json:"data"`
		ImportHash string `json:"importHash"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		server.BindError(c, err)
		return
	}
	record, err := h.service(c).Import(c.Request.Context(), &body.Data, body.ImportHash)
	if err != nil {
		server.Error(c, err)
		return
	}
	server.Success(c, record)
}
