// Package handlers wires the REST surface: one file per entity, handlers as
// closures over their dependencies.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/pagination"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// paginationParams reads skip/limit query params, clamped server-side.
func paginationParams(c *gin.Context) pagination.Params {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(pagination.DefaultLimit)))
	return pagination.Clamp(skip, limit)
}

// parseIDParam parses a uuid path parameter, responding 400 on bad input.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpx.BadRequestResponse(c, "Invalid id format")
		return uuid.Nil, false
	}
	return id, true
}

// respondPage runs the mirrored count+fetch pair for q and writes the list
// envelope.
func respondPage[T any](c *gin.Context, repo *repository.Repository[T], q repository.Query) {
	ctx := c.Request.Context()

	total, err := repo.Count(ctx, q)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	items, err := repo.List(ctx, q)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(200, pagination.NewPage(items, total, q.Params))
}
