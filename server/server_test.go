package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	n := 0
	tasks := store.New(store.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}))
	return New(tasks)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func validRequest() TaskRequest {
	return TaskRequest{Title: "Buy milk", Description: "2% milk", Tags: []string{"grocery"}, Priority: "Low"}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCreateTask(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/tasks", validRequest())

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[model.Task](t, rec)
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, []string{"grocery"}, task.Tags)
	assert.Equal(t, []string{"green"}, task.TagColors)
	assert.Equal(t, model.PriorityLow, task.Priority)
	assert.Equal(t, 1, s.Tasks().Len())
}

func TestCreateTask_Validation(t *testing.T) {
	s := newTestServer(t)
	req := validRequest()
	req.Title = "ab"
	req.Tags = nil

	rec := do(t, s, http.MethodPost, "/api/v1/tasks", req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "title")
	assert.Contains(t, resp.Fields, "tags")
	assert.Zero(t, s.Tasks().Len())
}

func TestCreateTask_TagsKeptAsGiven(t *testing.T) {
	s := newTestServer(t)
	req := validRequest()
	req.Tags = []string{"ops,prod", " x ", ""}

	rec := do(t, s, http.MethodPost, "/api/v1/tasks", req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[model.Task](t, rec)
	assert.Equal(t, []string{"ops,prod", "x"}, task.Tags)
	assert.Equal(t, []string{"green", "blue"}, task.TagColors)
}

func TestCreateTask_BlankTagsRejected(t *testing.T) {
	s := newTestServer(t)
	req := validRequest()
	req.Tags = []string{" ", ""}

	rec := do(t, s, http.MethodPost, "/api/v1/tasks", req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Fields, "tags")
	assert.Zero(t, s.Tasks().Len())
}

func TestCreateTask_BadJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTask(t *testing.T) {
	s := newTestServer(t)
	created := s.Tasks().Add(store.AddInput{Title: "one"})

	rec := do(t, s, http.MethodGet, "/api/v1/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[model.Task](t, rec).ID)

	rec = do(t, s, http.MethodGet, "/api/v1/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task not found", decode[ErrorResponse](t, rec).Error)
}

func TestUpdateTask(t *testing.T) {
	s := newTestServer(t)
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)
	created := s.Tasks().Add(store.AddInput{Title: "Write", Description: "docs", Tags: []string{"x"}, DueDate: &due})

	t.Run("empty fields keep values", func(t *testing.T) {
		rec := do(t, s, http.MethodPatch, "/api/v1/tasks/"+created.ID, TaskRequest{Priority: "high"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		task := decode[model.Task](t, rec)
		assert.Equal(t, model.PriorityHigh, task.Priority)
		assert.Equal(t, "Write", task.Title)
		assert.Equal(t, []string{"x"}, task.Tags)
		assert.NotNil(t, task.DueDate)
	})

	t.Run("tags replaced", func(t *testing.T) {
		rec := do(t, s, http.MethodPatch, "/api/v1/tasks/"+created.ID, TaskRequest{Tags: []string{"a", "b"}})
		require.Equal(t, http.StatusOK, rec.Code)
		task := decode[model.Task](t, rec)
		assert.Equal(t, []string{"a", "b"}, task.Tags)
		assert.Equal(t, []string{"green", "blue"}, task.TagColors)
	})

	t.Run("tags with commas are not split", func(t *testing.T) {
		rec := do(t, s, http.MethodPatch, "/api/v1/tasks/"+created.ID, TaskRequest{Tags: []string{"ops,prod"}})
		require.Equal(t, http.StatusOK, rec.Code)
		task := decode[model.Task](t, rec)
		assert.Equal(t, []string{"ops,prod"}, task.Tags)
		assert.Equal(t, []string{"green"}, task.TagColors)
	})

	t.Run("blank tags rejected", func(t *testing.T) {
		rec := do(t, s, http.MethodPatch, "/api/v1/tasks/"+created.ID, TaskRequest{Tags: []string{"  "}})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Fields, "tags")
	})

	t.Run("clear due date", func(t *testing.T) {
		rec := do(t, s, http.MethodPatch, "/api/v1/tasks/"+created.ID, TaskRequest{ClearDue: true})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decode[model.Task](t, rec).DueDate)
	})

	t.Run("invalid field", func(t *testing.T) {
		rec := do(t, s, http.MethodPatch, "/api/v1/tasks/"+created.ID, TaskRequest{Priority: "Urgent"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode[ErrorResponse](t, rec).Fields, "priority")
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(t, s, http.MethodPatch, "/api/v1/tasks/missing", TaskRequest{Title: "Other"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	s := newTestServer(t)
	created := s.Tasks().Add(store.AddInput{Title: "one"})

	rec := do(t, s, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, s.Tasks().Len())

	rec = do(t, s, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAllTasks(t *testing.T) {
	s := newTestServer(t)
	s.Tasks().Seed()

	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodDelete, "/api/v1/tasks", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Zero(t, s.Tasks().Len())
	}
}

func TestToggleStar(t *testing.T) {
	s := newTestServer(t)
	created := s.Tasks().Add(store.AddInput{Title: "one"})

	rec := do(t, s, http.MethodPost, "/api/v1/tasks/"+created.ID+"/star", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.Task](t, rec).Starred)

	rec = do(t, s, http.MethodPost, "/api/v1/tasks/missing/star", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTasks(t *testing.T) {
	s := newTestServer(t)
	s.Tasks().Add(store.AddInput{Title: "alpha", Tags: []string{"one"}, Priority: model.PriorityHigh})
	s.Tasks().Add(store.AddInput{Title: "beta", Tags: []string{"two"}})

	t.Run("all", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/tasks", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[ListResponse](t, rec)
		assert.Len(t, resp.Tasks, 2)
		assert.Empty(t, resp.Buckets)
	})

	t.Run("query does not change shared search", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/tasks?q=ALP", nil)
		resp := decode[ListResponse](t, rec)
		require.Len(t, resp.Tasks, 1)
		assert.Equal(t, "alpha", resp.Tasks[0].Title)
		assert.Empty(t, s.Tasks().SearchTerm())
	})

	t.Run("grouped", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/tasks?group_by=priority", nil)
		resp := decode[ListResponse](t, rec)
		assert.Equal(t, model.GroupPriority, resp.GroupBy)
		require.Len(t, resp.Buckets, 3)
		assert.Len(t, resp.Buckets[1].Tasks, 1)
		assert.Len(t, resp.Buckets[2].Tasks, 1)
	})

	t.Run("bad grouping", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/tasks?group_by=color", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	s.Tasks().Add(store.AddInput{Title: "alpha"})
	s.Tasks().Add(store.AddInput{Title: "beta"})

	rec := do(t, s, http.MethodPut, "/api/v1/search", SearchRequest{Term: "bet"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bet", s.Tasks().SearchTerm())

	rec = do(t, s, http.MethodGet, "/api/v1/search", nil)
	assert.Equal(t, "bet", decode[SearchRequest](t, rec).Term)

	rec = do(t, s, http.MethodGet, "/api/v1/tasks", nil)
	resp := decode[ListResponse](t, rec)
	assert.Equal(t, "bet", resp.Search)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "beta", resp.Tasks[0].Title)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decode[ErrorResponse](t, rec).Error)
}

func TestNewWithNilCollection(t *testing.T) {
	s := New(nil)
	require.NotNil(t, s.Tasks())
	rec := do(t, s, http.MethodGet, "/api/v1/tasks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
