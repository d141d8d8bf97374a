package handlers

import (
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/store"
	"github.com/gin-gonic/gin"
)

func getOne[E any](h *Handler, c *gin.Context, coll store.Collection[E]) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, err := coll.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// deleteOne answers the delete and reports the removed id
func deleteOne[E any](h *Handler, c *gin.Context, coll store.Collection[E]) (int, bool) {
	id, ok := parseID(c)
	if !ok {
		return 0, false
	}
	if _, err := coll.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return 0, false
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
	return id, true
}

// patchOne validates patch merged over the current row, then stores it.
// check sees the merged row; the store applies the same merge to its own copy.
func patchOne[E any](h *Handler, c *gin.Context, coll store.Collection[E], id int, apply func(*E), check func(E) error) (E, bool) {
	ctx := c.Request.Context()
	var zero E

	current, err := coll.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return zero, false
	}
	apply(&current)
	if err := check(current); err != nil {
		h.respondError(c, err)
		return zero, false
	}

	updated, err := coll.Update(ctx, id, apply)
	if err != nil {
		h.respondError(c, err)
		return zero, false
	}
	return updated, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
