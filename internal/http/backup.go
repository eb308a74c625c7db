package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type backupUser struct {
	UserResponse
	Tasks []TaskResponse `json:"tasks"`
}

type backupSnapshot struct {
	GeneratedAt string       `json:"generated_at"`
	Users       []backupUser `json:"users"`
}

// createBackup serializes every account with its tasks and uploads the
// snapshot to object storage. Password hashes never enter the snapshot.
func (h *Handler) createBackup(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	ctx := c.Request.Context()

	pending, err := h.users.ListPending(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	approved, err := h.users.ListApproved(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	snapshot := backupSnapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, user := range append(pending, approved...) {
		tasks, err := h.tasks.List(ctx, user.ID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		snapshot.Users = append(snapshot.Users, backupUser{
			UserResponse: userToResponse(user),
			Tasks:        tasksToResponse(tasks),
		})
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		h.writeError(c, err)
		return
	}

	key := path.Join(h.keyPrefix, fmt.Sprintf("backup-%s.json", uuid.NewString()))
	location, err := h.storage.Upload(ctx, h.bucket, key, bytes.NewReader(data))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": location, "users": len(snapshot.Users)})
}

func (h *Handler) listBackups(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.keyPrefix)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]gin.H, len(objects))
	for i, obj := range objects {
		entry := gin.H{"key": obj.Key, "size": obj.Size}
		if obj.LastModified != nil && !obj.LastModified.IsZero() {
			entry["last_modified"] = obj.LastModified.Format(time.RFC3339)
		}
		resp[i] = entry
	}
	c.JSON(http.StatusOK, resp)
}
