package server

import (
	"net/http"
	"time"

	"github.com/existflow/taskdeck/internal/form"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/labstack/echo/v4"
)

// TaskRequest is the body of create and update requests.
// On update, omitted or empty fields keep their current value.
type TaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"due_date"`           // YYYY-MM-DD, today, tomorrow or +Nd
	ClearDue    bool     `json:"clear_due,omitempty"` // update only
}

// Form converts the request to form input. Tags are taken as given, never split.
func (r TaskRequest) Form() form.TaskForm {
	return form.TaskForm{
		Title:       r.Title,
		Description: r.Description,
		TagList:     r.Tags,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

// ListResponse is returned by GET /api/v1/tasks
type ListResponse struct {
	Search  string         `json:"search"`
	Tasks   []model.Task   `json:"tasks"`
	GroupBy model.GroupBy  `json:"group_by,omitempty"`
	Buckets []model.Bucket `json:"buckets,omitempty"`
}

// SearchRequest is the body of PUT /api/v1/search
type SearchRequest struct {
	Term string `json:"term"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorResponse{Error: msg})
}

func validationError(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:  "validation failed",
		Fields: form.Messages(err),
	})
}

// handleListTasks returns tasks matching q, or the shared search term when q is absent
func (s *Server) handleListTasks(c echo.Context) error {
	resp := ListResponse{Search: s.tasks.SearchTerm()}
	if q, ok := c.QueryParams()["q"]; ok && len(q) > 0 {
		resp.Search = q[0]
		resp.Tasks = store.FilterTasks(s.tasks.Tasks(), q[0])
	} else {
		resp.Tasks = s.tasks.Filtered()
	}

	if raw := c.QueryParam("group_by"); raw != "" {
		groupBy, ok := model.ParseGroupBy(raw)
		if !ok {
			return errorJSON(c, http.StatusBadRequest, "group_by must be one of None, Tags, Priority, Favorites")
		}
		resp.GroupBy = groupBy
		resp.Buckets = store.GroupTasks(resp.Tasks, groupBy)
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetTask(c echo.Context) error {
	task, ok := s.tasks.Get(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	f := req.Form()
	if err := f.Validate(); err != nil {
		return validationError(c, err)
	}

	task := s.tasks.Add(f.AddInput(time.Now()))
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	f := req.Form()
	if err := f.ValidatePartial(); err != nil {
		return validationError(c, err)
	}

	task, ok := s.tasks.Edit(c.Param("id"), f.EditInput(time.Now(), req.ClearDue))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if !s.tasks.Delete(c.Param("id")) {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteAllTasks(c echo.Context) error {
	s.tasks.DeleteAll()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleToggleStar(c echo.Context) error {
	task, ok := s.tasks.ToggleStar(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleGetSearch(c echo.Context) error {
	return c.JSON(http.StatusOK, SearchRequest{Term: s.tasks.SearchTerm()})
}

func (s *Server) handleSetSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	s.tasks.SetSearchTerm(req.Term)
	return c.JSON(http.StatusOK, req)
}
