package handlers

import (
	"fmt"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// listQuery reads offset, limit, sort_by and order. Range checks happen in
// the services; only malformed numbers are rejected here.
func listQuery(c *fiber.Ctx) (dto.ListQuery, string) {
	q := dto.ListQuery{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, "offset must be an integer"
		}
		q.Offset = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, "limit must be an integer"
		}
		if n == 0 {
			// zero would otherwise fall back to the default page size
			return q, fmt.Sprintf("invalid limit: must be between 1 and %d", services.MaxLimit)
		}
		q.Limit = n
	}
	return q, ""
}
