package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"Planner/internal/auth"
	dom "Planner/internal/domain"
	"Planner/internal/dto"
	"Planner/internal/service"

	"github.com/gin-gonic/gin"
)

// TodoHandler handles the authenticated todo routes. The owner ID always
// comes from the verified token in context, never from the request body.
type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create godoc
// @Summary      Create a todo for today
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo content"
// @Success      200   {object}  dto.TodoResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /todos/today [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), auth.OwnerIDFromContext(c), req.Content)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// ListToday godoc
// @Summary      List today's pending todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos/today [get]
func (h *TodoHandler) ListToday(c *gin.Context) {
	list, err := h.svc.ListToday(c.Request.Context(), auth.OwnerIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: todosToResponses(list)})
}

// Delete godoc
// @Summary      Soft-delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.OperationResult
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.SoftDelete(c.Request.Context(), auth.OwnerIDFromContext(c), id)
	if err != nil {
		writeTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperationResult{OK: true, Todo: todoToResponse(t)})
}

// Complete godoc
// @Summary      Mark a todo completed
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.OperationResult
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id}/complete [post]
func (h *TodoHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Complete(c.Request.Context(), auth.OwnerIDFromContext(c), id)
	if err != nil {
		writeTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperationResult{OK: true, Todo: todoToResponse(t)})
}

// QueryMonth godoc
// @Summary      List todos created in a month
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        year    query     int     true   "4-digit year"
// @Param        month   query     int     true   "Month 1-12"
// @Param        status  query     string  false  "pending or completed"
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      400  {object}  map[string]string
// @Router       /todos/month [get]
func (h *TodoHandler) QueryMonth(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var status *dom.Status
	if q.Status != "" {
		parsed, ok := dom.ParseStatus(q.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending or completed"})
			return
		}
		status = &parsed
	}
	list, err := h.svc.QueryByMonth(c.Request.Context(), auth.OwnerIDFromContext(c), q.Year, q.Month, status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: todosToResponses(list)})
}

// CountMonth godoc
// @Summary      Count todos created in a month, by status
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  true  "4-digit year"
// @Param        month  query     int  true  "Month 1-12"
// @Success      200  {object}  dto.CountsResponse
// @Failure      400  {object}  map[string]string
// @Router       /todos/month/counts [get]
func (h *TodoHandler) CountMonth(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	counts, err := h.svc.CountByMonth(c.Request.Context(), auth.OwnerIDFromContext(c), q.Year, q.Month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	c.JSON(http.StatusOK, dto.CountsResponse{
		Pending:   counts.Pending,
		Completed: counts.Completed,
		Total:     counts.Total,
	})
}

// writeTodoError maps transition errors to statuses: unknown, foreign and
// (for complete) deleted ids are one 404; every conflict flavor is a 400.
func writeTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyDeleted),
		errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:         t.ID,
		Content:    t.Content,
		Status:     t.Status.String(),
		FinishedAt: t.FinishedAt,
		IsDeleted:  t.IsDeleted,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
