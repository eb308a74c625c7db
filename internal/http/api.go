package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	tasks     service.TaskService
	tokens    *auth.Tokens
	storage   storage.Service
	bucket    string
	keyPrefix string
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, tasks service.TaskService, tokens *auth.Tokens, store storage.Service, bucket, keyPrefix string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:     users,
		tasks:     tasks,
		tokens:    tokens,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))
	router.Use(metricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/register", h.register)
	router.POST("/login", h.login)

	user := router.Group("/tasks", h.authRequired())
	{
		user.GET("", h.listTasks)
		user.POST("", h.createTask)
		user.PUT("/:id", h.updateTask)
		user.PATCH("/:id/done", h.markDone)
		user.PATCH("/:id/undone", h.markUndone)
		user.DELETE("/:id", h.deleteTask)
	}

	admin := router.Group("/admin", h.authRequired(), h.adminRequired())
	{
		admin.GET("/requests", h.listRequests)
		admin.PATCH("/approve/:id", h.resolveRequest)
		admin.GET("/approved-users", h.listApprovedUsers)
		admin.DELETE("/users/:id", h.deleteUser)
		admin.GET("/user/:id", h.getUser)
		admin.GET("/user/:id/tasks", h.listUserTasks)
		admin.PATCH("/task/:id/:action", h.moderateTask)
		admin.DELETE("/task/:id", h.deleteAnyTask)
		admin.POST("/backup", h.createBackup)
		admin.GET("/backups", h.listBackups)
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type taskRequest struct {
	Title string `json:"title"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Approved  bool   `json:"approved"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

type TaskResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration submitted for approval",
		"user":    userToResponse(*user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, _, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) listTasks(c *gin.Context) {
	claims := currentClaims(c)
	tasks, err := h.tasks.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponse(tasks))
}

func (h *Handler) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claims := currentClaims(c)
	task, err := h.tasks.Create(c.Request.Context(), claims.UserID, req.Title)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskToResponse(*task))
}

func (h *Handler) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claims := currentClaims(c)
	if err := h.tasks.UpdateTitle(c.Request.Context(), id, claims.UserID, req.Title); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

func (h *Handler) markDone(c *gin.Context) {
	h.setDone(c, true)
}

func (h *Handler) markUndone(c *gin.Context) {
	h.setDone(c, false)
}

func (h *Handler) setDone(c *gin.Context, done bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.tasks.SetDone(c.Request.Context(), id, claims.UserID, done); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.tasks.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// writeError maps service failures to HTTP statuses. Internal errors are
// logged and surfaced as a generic message.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
	case errors.Is(err, service.ErrPendingApproval):
		c.JSON(http.StatusForbidden, gin.H{"error": "account pending approval"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Approved:  user.Approved,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func usersToResponse(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	return resp
}

func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Done:      task.Done,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	return resp
}
