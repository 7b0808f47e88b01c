package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todoflow-backend/internal/analytics"
	"todoflow-backend/internal/config"
	"todoflow-backend/internal/extract"
)

// memStore is the in-memory Store used by handler tests.
type memStore struct {
	nextID int
	tasks  map[int]Task
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, tasks: map[int]Task{}}
}

func (m *memStore) Create(_ context.Context, rawInput, text string) (Task, error) {
	t := Task{
		ID:        m.nextID,
		RawInput:  rawInput,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	m.tasks[t.ID] = t
	m.nextID++
	return t, nil
}

func (m *memStore) List(_ context.Context) ([]Task, error) {
	var out []Task
	for _, t := range m.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) SetCompleted(_ context.Context, id int, completed bool) (Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	t.Completed = completed
	m.tasks[id] = t
	return t, nil
}

func (m *memStore) Delete(_ context.Context, id int) error {
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func testNormalizer() *extract.Normalizer {
	// no remote: deterministic rule-based extraction only
	return extract.NewNormalizer(
		nil,
		extract.NewRuleExtractor(config.DefaultFillerPhrases),
		time.Second,
		zap.NewNop(),
	)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestCreateTask(t *testing.T) {
	store := newMemStore()
	var events *analytics.Logger
	h := CreateTaskHandler(store, testNormalizer(), events, zap.NewNop())

	w := postJSON(t, h, "/tasks", map[string]string{"text": "Need to buy milk"})
	require.Equal(t, http.StatusCreated, w.Code)

	var task Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "buy milk", task.Text)
	assert.Equal(t, "Need to buy milk", task.RawInput)
	assert.False(t, task.Completed)
	assert.NotZero(t, task.ID)
}

func TestCreateTaskEmptyInput(t *testing.T) {
	h := CreateTaskHandler(newMemStore(), testNormalizer(), nil, zap.NewNop())

	w := postJSON(t, h, "/tasks", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTaskInvalidJSON(t *testing.T) {
	h := CreateTaskHandler(newMemStore(), testNormalizer(), nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTasks(t *testing.T) {
	store := newMemStore()
	_, _ = store.Create(context.Background(), "Need to buy milk", "buy milk")
	_, _ = store.Create(context.Background(), "Clean the garage", "Clean the garage")

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()
	GetTasksHandler(store)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "Clean the garage", tasks[0].Text) // newest first
}

func TestListTasksEmptyIsArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()
	GetTasksHandler(newMemStore())(w, req)

	assert.JSONEq(t, "[]", w.Body.String())
}

func TestToggleTwiceRoundTrips(t *testing.T) {
	store := newMemStore()
	task, _ := store.Create(context.Background(), "Need to buy milk", "buy milk")
	h := SetTaskStatusHandler(store, nil)

	w := postJSON(t, h, "/tasks/status", map[string]any{"task_id": task.ID, "completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	var got Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Completed)

	w = postJSON(t, h, "/tasks/status", map[string]any{"task_id": task.ID, "completed": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Completed, "double toggle must restore the original flag")
}

func TestSetStatusValidation(t *testing.T) {
	h := SetTaskStatusHandler(newMemStore(), nil)

	w := postJSON(t, h, "/tasks/status", map[string]any{"completed": true})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing task_id")

	w = postJSON(t, h, "/tasks/status", map[string]any{"task_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing completed")
}

func TestSetStatusNotFound(t *testing.T) {
	h := SetTaskStatusHandler(newMemStore(), nil)

	w := postJSON(t, h, "/tasks/status", map[string]any{"task_id": 42, "completed": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTaskRemovesIt(t *testing.T) {
	store := newMemStore()
	task, _ := store.Create(context.Background(), "Need to buy milk", "buy milk")

	w := postJSON(t, DeleteTaskHandler(store, nil), "/tasks/delete", map[string]any{"task_id": task.ID})
	require.Equal(t, http.StatusOK, w.Code)

	tasks, err := store.List(context.Background())
	require.NoError(t, err)
	for _, tsk := range tasks {
		assert.NotEqual(t, task.ID, tsk.ID)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	w := postJSON(t, DeleteTaskHandler(newMemStore(), nil), "/tasks/delete", map[string]any{"task_id": 7})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
