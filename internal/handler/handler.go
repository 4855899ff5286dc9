package handler

import "github.com/gin-gonic/gin"

// actor returns the authenticated user id and role set by the auth
// middleware. Both are empty on unauthenticated routes.
func actor(c *gin.Context) (id string, role string) {
	if v, ok := c.Get("userID"); ok {
		id, _ = v.(string)
	}
	if v, ok := c.Get("userRole"); ok {
		role, _ = v.(string)
	}
	return id, role
}

// listPayload is the standard envelope for paginated collections
func listPayload(items interface{}, total int64, page, limit int) gin.H {
	return gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	}
}
