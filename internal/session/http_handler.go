package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// HTTPHandler обрабатывает HTTP запросы управления сессиями (Presentation Layer)
type HTTPHandler struct {
	manager *Manager
}

// NewHTTPHandler создает новый HTTP обработчик
func NewHTTPHandler(manager *Manager) *HTTPHandler {
	return &HTTPHandler{
		manager: manager,
	}
}

// RegisterRoutes регистрирует маршруты в роутере
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/sessions").Subrouter()

	api.HandleFunc("", h.ListSessions).Methods("GET")
	api.HandleFunc("/activity/start", h.StartActivity).Methods("POST")
	api.HandleFunc("/activity/stop", h.StopActivity).Methods("POST")
	api.HandleFunc("/activity", h.GetActiveActivity).Methods("GET")
	api.HandleFunc("/sleep/start", h.StartSleep).Methods("POST")
	api.HandleFunc("/sleep/stop", h.StopSleep).Methods("POST")
	api.HandleFunc("/sleep", h.GetActiveSleep).Methods("GET")
}

// StartActivity открывает тренировочную сессию
// @Summary Начать тренировку
// @Description Открывает тренировочную сессию указанного типа. Одновременно может быть открыта только одна тренировка
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body StartActivityRequest true "Тип активности"
// @Success 201 {object} ActivitySession "Открытая сессия"
// @Failure 400 {object} map[string]interface{} "Неизвестный тип активности"
// @Failure 409 {object} map[string]interface{} "Тренировка уже открыта"
// @Router /sessions/activity/start [post]
func (h *HTTPHandler) StartActivity(w http.ResponseWriter, r *http.Request) {
	var req StartActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.manager.StartActivity(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidActivityType):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrActivityAlreadyActive):
			respondError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("[ERROR] Failed to start activity session: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to start activity session")
		}
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// StopActivity закрывает тренировочную сессию
// @Summary Завершить тренировку
// @Description Закрывает открытую тренировочную сессию и сохраняет ее в архив
// @Tags Sessions
// @Produce json
// @Success 200 {object} ActivitySession "Завершенная сессия"
// @Failure 404 {object} map[string]interface{} "Нет открытой тренировки"
// @Router /sessions/activity/stop [post]
func (h *HTTPHandler) StopActivity(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.StopActivity(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			respondError(w, http.StatusNotFound, "No active activity session")
			return
		}
		log.Printf("[ERROR] Failed to stop activity session: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to stop activity session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// GetActiveActivity возвращает открытую тренировку
// @Summary Текущая тренировка
// @Description Возвращает открытую тренировочную сессию, если она есть
// @Tags Sessions
// @Produce json
// @Success 200 {object} ActivitySession "Открытая сессия"
// @Failure 404 {object} map[string]interface{} "Нет открытой тренировки"
// @Router /sessions/activity [get]
func (h *HTTPHandler) GetActiveActivity(w http.ResponseWriter, r *http.Request) {
	session, _ := h.manager.ActiveActivity(r.Context())
	if session == nil {
		respondError(w, http.StatusNotFound, "No active activity session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// StartSleep открывает сессию сна
// @Summary Начать сон
// @Description Открывает сессию сна. Одновременно может быть открыта только одна
// @Tags Sessions
// @Produce json
// @Success 201 {object} SleepSession "Открытая сессия"
// @Failure 409 {object} map[string]interface{} "Сон уже открыт"
// @Router /sessions/sleep/start [post]
func (h *HTTPHandler) StartSleep(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.StartSleep(r.Context())
	if err != nil {
		if errors.Is(err, ErrSleepAlreadyActive) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("[ERROR] Failed to start sleep session: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to start sleep session")
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// StopSleep закрывает сессию сна
// @Summary Завершить сон
// @Description Закрывает открытую сессию сна и сохраняет ее в архив
// @Tags Sessions
// @Produce json
// @Success 200 {object} SleepSession "Завершенная сессия"
// @Failure 404 {object} map[string]interface{} "Нет открытой сессии сна"
// @Router /sessions/sleep/stop [post]
func (h *HTTPHandler) StopSleep(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.StopSleep(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			respondError(w, http.StatusNotFound, "No active sleep session")
			return
		}
		log.Printf("[ERROR] Failed to stop sleep session: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to stop sleep session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// GetActiveSleep возвращает открытую сессию сна
// @Summary Текущий сон
// @Description Возвращает открытую сессию сна, если она есть
// @Tags Sessions
// @Produce json
// @Success 200 {object} SleepSession "Открытая сессия"
// @Failure 404 {object} map[string]interface{} "Нет открытой сессии сна"
// @Router /sessions/sleep [get]
func (h *HTTPHandler) GetActiveSleep(w http.ResponseWriter, r *http.Request) {
	session, _ := h.manager.ActiveSleep(r.Context())
	if session == nil {
		respondError(w, http.StatusNotFound, "No active sleep session")
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// ListSessions возвращает архив завершенных сессий
// @Summary Архив сессий
// @Description Возвращает завершенные тренировки и сессии сна от новых к старым
// @Tags Sessions
// @Produce json
// @Param limit query int false "Максимум записей каждого вида" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]interface{} "Архив сессий"
// @Failure 500 {object} map[string]interface{} "Ошибка хранилища"
// @Router /sessions [get]
func (h *HTTPHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := getQueryInt(r, "limit", 50)
	offset := getQueryInt(r, "offset", 0)

	sessions, err := h.manager.ListSessions(r.Context(), limit, offset)
	if err != nil {
		log.Printf("[ERROR] Failed to list sessions: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"limit":    limit,
		"offset":   offset,
	})
}

// ===== Утилиты =====

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] Failed to encode JSON response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":  message,
		"status": status,
	})
}

func getQueryInt(r *http.Request, key string, defaultValue int) int {
	valueStr := r.URL.Query().Get(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
