package todos

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"todoflow-backend/internal/analytics"
	"todoflow-backend/internal/extract"
	"todoflow-backend/pkg/metrics"
)

// -------------------------------
// HANDLERS
// -------------------------------

func GetTasksHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := store.List(r.Context())
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		if tasks == nil {
			tasks = []Task{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tasks)
	}
}

func CreateTaskHandler(store Store, normalizer *extract.Normalizer, events *analytics.Logger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		text, err := normalizer.Normalize(r.Context(), body.Text)
		if errors.Is(err, extract.ErrEmptyInput) {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "normalize error", http.StatusInternalServerError)
			return
		}

		task, err := store.Create(r.Context(), body.Text, text)
		if err != nil {
			log.Error("create task failed", zap.Error(err))
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		metrics.TaskCount.WithLabelValues("create").Inc()
		events.Log(r.Context(), analytics.FromRequest(r), "task_created", map[string]any{
			"task_id":  task.ID,
			"text_len": len(task.Text),
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(task)
	}
}

func SetTaskStatusHandler(store Store, events *analytics.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TaskID    int   `json:"task_id"`
			Completed *bool `json:"completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.TaskID == 0 {
			http.Error(w, "task_id required", http.StatusBadRequest)
			return
		}
		if body.Completed == nil {
			http.Error(w, "completed required", http.StatusBadRequest)
			return
		}

		task, err := store.SetCompleted(r.Context(), body.TaskID, *body.Completed)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		metrics.TaskCount.WithLabelValues("status").Inc()
		event := "task_uncompleted"
		if task.Completed {
			event = "task_completed"
		}
		events.Log(r.Context(), analytics.FromRequest(r), event, map[string]any{
			"task_id": task.ID,
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(task)
	}
}

func DeleteTaskHandler(store Store, events *analytics.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TaskID int `json:"task_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.TaskID == 0 {
			http.Error(w, "task_id required", http.StatusBadRequest)
			return
		}

		err := store.Delete(r.Context(), body.TaskID)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}

		metrics.TaskCount.WithLabelValues("delete").Inc()
		events.Log(r.Context(), analytics.FromRequest(r), "task_deleted", map[string]any{
			"task_id": body.TaskID,
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"deleted": body.TaskID})
	}
}
