package reading

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/wellband/bracelet/internal/engine"
)

// HTTPHandler обрабатывает HTTP запросы чтения телеметрии (Presentation Layer)
type HTTPHandler struct {
	repository Repository
	cache      CacheStore // nil, если Redis не настроен
	deviceID   string
}

// NewHTTPHandler создает новый HTTP обработчик
func NewHTTPHandler(repository Repository, cache CacheStore, deviceID string) *HTTPHandler {
	return &HTTPHandler{
		repository: repository,
		cache:      cache,
		deviceID:   deviceID,
	}
}

// RegisterRoutes регистрирует маршруты в роутере
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/readings", h.ListReadings).Methods("GET")
	api.HandleFunc("/readings/latest", h.GetLatestReading).Methods("GET")
	api.HandleFunc("/readings/recent", h.GetRecentReadings).Methods("GET")
	api.HandleFunc("/history/daily", h.GetDailyHistory).Methods("GET")
	api.HandleFunc("/device/state", h.GetDeviceState).Methods("GET")
}

// GetLatestReading возвращает последнее показание
// @Summary Последнее показание
// @Description Возвращает последнее сгенерированное показание. Сначала проверяется кэш, затем основное хранилище
// @Tags Readings
// @Produce json
// @Success 200 {object} engine.Reading "Показание"
// @Failure 404 {object} map[string]interface{} "Показаний еще нет"
// @Router /readings/latest [get]
func (h *HTTPHandler) GetLatestReading(w http.ResponseWriter, r *http.Request) {
	reading := h.cachedLatest(r.Context())

	if reading == nil {
		var err error
		reading, err = h.repository.LatestReading(r.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to load latest reading: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to load latest reading")
			return
		}
	}

	if reading == nil {
		respondError(w, http.StatusNotFound, "No readings yet")
		return
	}

	respondJSON(w, http.StatusOK, reading)
}

// GetRecentReadings возвращает последние показания, новые первыми
// @Summary Лента последних показаний
// @Description Возвращает последние показания в обратном хронологическом порядке
// @Tags Readings
// @Produce json
// @Param limit query int false "Количество показаний (по умолчанию 50)"
// @Success 200 {object} map[string]interface{} "Список показаний"
// @Router /readings/recent [get]
func (h *HTTPHandler) GetRecentReadings(w http.ResponseWriter, r *http.Request) {
	limit := getQueryInt(r, "limit", 50)

	readings := h.cachedRecent(r.Context(), limit)

	if readings == nil {
		var err error
		readings, err = h.repository.RecentReadings(r.Context(), limit)
		if err != nil {
			log.Printf("[ERROR] Failed to load recent readings: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to load recent readings")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"readings": readings,
		"count":    len(readings),
	})
}

// ListReadings возвращает показания за интервал времени
// @Summary Показания за интервал
// @Description Возвращает показания в диапазоне [from, to] в хронологическом порядке
// @Tags Readings
// @Produce json
// @Param from query string false "Начало интервала, RFC3339 (по умолчанию час назад)"
// @Param to query string false "Конец интервала, RFC3339 (по умолчанию сейчас)"
// @Param limit query int false "Максимум записей (по умолчанию 1000)"
// @Success 200 {object} map[string]interface{} "Список показаний"
// @Failure 400 {object} map[string]interface{} "Неверный формат времени"
// @Router /readings [get]
func (h *HTTPHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := now.Add(-time.Hour)
	to := now

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		from = parsed
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		to = parsed
	}

	limit := getQueryInt(r, "limit", 1000)

	readings, err := h.repository.ListReadings(r.Context(), from, to, limit)
	if err != nil {
		log.Printf("[ERROR] Failed to query readings: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to query readings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"readings": readings,
		"count":    len(readings),
		"from":     from,
		"to":       to,
	})
}

// GetDailyHistory возвращает дневные сводки
// @Summary Дневные сводки
// @Description Возвращает агрегированные показатели по дням, новые первыми
// @Tags History
// @Produce json
// @Param days query int false "Количество дней (по умолчанию 30)"
// @Success 200 {object} map[string]interface{} "Список сводок"
// @Router /history/daily [get]
func (h *HTTPHandler) GetDailyHistory(w http.ResponseWriter, r *http.Request) {
	days := getQueryInt(r, "days", 30)

	summaries, err := h.repository.ListDailySummaries(r.Context(), days)
	if err != nil {
		log.Printf("[ERROR] Failed to load daily summaries: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load daily summaries")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"days":      days,
		"summaries": summaries,
		"count":     len(summaries),
	})
}

// GetDeviceState возвращает сохраненное состояние устройства
// @Summary Состояние устройства
// @Description Возвращает последнее сохраненное состояние браслета: заряд, подключение, время синхронизации
// @Tags Device
// @Produce json
// @Success 200 {object} engine.DeviceState "Состояние устройства"
// @Failure 404 {object} map[string]interface{} "Состояние еще не сохранено"
// @Router /device/state [get]
func (h *HTTPHandler) GetDeviceState(w http.ResponseWriter, r *http.Request) {
	state := h.cachedDeviceState(r.Context())

	if state == nil {
		var err error
		state, err = h.repository.DeviceState(r.Context(), h.deviceID)
		if err != nil {
			log.Printf("[ERROR] Failed to load device state: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to load device state")
			return
		}
	}

	if state == nil {
		respondError(w, http.StatusNotFound, "Device state not saved yet")
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// ===== Кэш =====

// Ошибки кэша не видны клиенту: запрос уходит в основное хранилище

func (h *HTTPHandler) cachedLatest(ctx context.Context) *engine.Reading {
	if h.cache == nil {
		return nil
	}
	reading, err := h.cache.GetLatestReading(ctx)
	if err != nil {
		log.Printf("[WARN] Cache lookup failed for latest reading: %v", err)
		return nil
	}
	return reading
}

func (h *HTTPHandler) cachedRecent(ctx context.Context, limit int) []engine.Reading {
	if h.cache == nil {
		return nil
	}
	readings, err := h.cache.GetRecentReadings(ctx, limit)
	if err != nil {
		log.Printf("[WARN] Cache lookup failed for recent readings: %v", err)
		return nil
	}
	if len(readings) == 0 {
		return nil
	}
	return readings
}

func (h *HTTPHandler) cachedDeviceState(ctx context.Context) *engine.DeviceState {
	if h.cache == nil {
		return nil
	}
	state, err := h.cache.GetDeviceState(ctx, h.deviceID)
	if err != nil {
		log.Printf("[WARN] Cache lookup failed for device state: %v", err)
		return nil
	}
	return state
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
