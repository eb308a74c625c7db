package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type approveRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *Handler) listRequests(c *gin.Context) {
	users, err := h.users.ListPending(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usersToResponse(users))
}

// resolveRequest approves or rejects a registration request. Rejection
// deletes the record outright; the username becomes free again.
func (h *Handler) resolveRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	switch req.Action {
	case "approve":
		if err := h.users.Approve(c.Request.Context(), id); err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user approved"})
	case "reject":
		if err := h.users.Reject(c.Request.Context(), id); err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user rejected"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be approve or reject"})
	}
}

func (h *Handler) listApprovedUsers(c *gin.Context) {
	users, err := h.users.ListApproved(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usersToResponse(users))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUserTasks(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasksToResponse(tasks))
}

// moderateTask flips the done flag on any user's task, without an ownership
// filter. The admin middleware has already vouched for the caller.
func (h *Handler) moderateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var done bool
	switch c.Param("action") {
	case "done":
		done = true
	case "undone":
		done = false
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be done or undone"})
		return
	}

	if err := h.tasks.SetDoneAny(c.Request.Context(), id, done); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

func (h *Handler) deleteAnyTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteAny(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
