package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/service"
)

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", service.ErrValidation, name, raw)
	}
	return uint(id), nil
}

func queryInt(c *gin.Context, name string) (int, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s must be an integer", service.ErrValidation, name)
	}
	return v, true, nil
}

// listFilters reads ?category=&status=&page=&limit=. Paging values are
// clamped later; filter values must be in range.
func listFilters(c *gin.Context) (models.FeedbackFilters, error) {
	var f models.FeedbackFilters

	if v, ok, err := queryInt(c, "category"); err != nil {
		return f, err
	} else if ok {
		category := models.Category(v)
		if !category.Valid() {
			return f, fmt.Errorf("%w: category must be between 1 and 4", service.ErrValidation)
		}
		f.Category = &category
	}

	if v, ok, err := queryInt(c, "status"); err != nil {
		return f, err
	} else if ok {
		status := models.Status(v)
		if !status.Valid() {
			return f, fmt.Errorf("%w: status must be between 1 and 4", service.ErrValidation)
		}
		f.Status = &status
	}

	var err error
	if f.Page, _, err = queryInt(c, "page"); err != nil {
		return f, err
	}
	if f.Limit, _, err = queryInt(c, "limit"); err != nil {
		return f, err
	}
	return f.Normalize(), nil
}
