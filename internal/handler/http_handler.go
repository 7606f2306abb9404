package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wellband/bracelet/internal/engine"
	"github.com/wellband/bracelet/internal/vitals"
)

// HTTPHandler обрабатывает HTTP запросы управления эмулятором (Presentation Layer)
type HTTPHandler struct {
	engine *engine.Engine
}

// NewHTTPHandler создает новый HTTP обработчик
func NewHTTPHandler(eng *engine.Engine) *HTTPHandler {
	return &HTTPHandler{
		engine: eng,
	}
}

// SetIntervalRequest задает период генерации показаний
type SetIntervalRequest struct {
	IntervalMs int64 `json:"interval_ms" example:"1000"`
}

// ForceStateRequest подменяет состояние следующего тика
type ForceStateRequest struct {
	State string `json:"state" example:"STRESSED"`
}

// RegisterRoutes регистрирует маршруты в роутере
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/device").Subrouter()

	api.HandleFunc("/start", h.Start).Methods("POST")
	api.HandleFunc("/stop", h.Stop).Methods("POST")
	api.HandleFunc("/status", h.Status).Methods("GET")
	api.HandleFunc("/interval", h.SetInterval).Methods("PUT")
	api.HandleFunc("/state", h.ForceState).Methods("POST")
	api.HandleFunc("/battery/reset", h.ResetBattery).Methods("POST")
	api.HandleFunc("/reset", h.Reset).Methods("POST")
}

// Start запускает эмулятор
// @Summary Запустить эмулятор
// @Description Запускает периодическую генерацию показаний. Повторный вызов не ошибка
// @Tags Device
// @Produce json
// @Success 200 {object} engine.Stats "Статистика после запуска"
// @Router /device/start [post]
func (h *HTTPHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.engine.Start()
	respondJSON(w, http.StatusOK, h.engine.GetStats())
}

// Stop останавливает эмулятор
// @Summary Остановить эмулятор
// @Description Останавливает генерацию показаний. Накопленное состояние сохраняется до следующего запуска
// @Tags Device
// @Produce json
// @Success 200 {object} engine.Stats "Статистика после остановки"
// @Router /device/stop [post]
func (h *HTTPHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.engine.Stop()
	respondJSON(w, http.StatusOK, h.engine.GetStats())
}

// Status возвращает статистику эмулятора
// @Summary Статус эмулятора
// @Description Возвращает состояние, счетчик тиков, период, заряд и накопленные показатели
// @Tags Device
// @Produce json
// @Success 200 {object} engine.Stats "Текущая статистика"
// @Router /device/status [get]
func (h *HTTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.GetStats())
}

// SetInterval меняет период генерации
// @Summary Изменить период тиков
// @Description Меняет период генерации показаний на лету, без перезапуска эмулятора
// @Tags Device
// @Accept json
// @Produce json
// @Param request body SetIntervalRequest true "Период в миллисекундах"
// @Success 200 {object} engine.Stats "Статистика с новым периодом"
// @Failure 400 {object} map[string]interface{} "Неположительный период"
// @Router /device/interval [put]
func (h *HTTPHandler) SetInterval(w http.ResponseWriter, r *http.Request) {
	var req SetIntervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IntervalMs <= 0 {
		respondError(w, http.StatusBadRequest, "interval_ms must be positive")
		return
	}

	h.engine.SetInterval(time.Duration(req.IntervalMs) * time.Millisecond)
	respondJSON(w, http.StatusOK, h.engine.GetStats())
}

// ForceState подменяет состояние следующего тика
// @Summary Форсировать состояние
// @Description Следующий тик будет сгенерирован в указанном состоянии, затем возобновляется обычное разрешение
// @Tags Device
// @Accept json
// @Produce json
// @Param request body ForceStateRequest true "Целевое состояние"
// @Success 200 {object} map[string]interface{} "Принятое состояние"
// @Failure 400 {object} map[string]interface{} "Неизвестное состояние"
// @Router /device/state [post]
func (h *HTTPHandler) ForceState(w http.ResponseWriter, r *http.Request) {
	var req ForceStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state := vitals.PhysiologicalState(req.State)
	if err := h.engine.ForceState(state); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"forced_state": state,
	})
}

// ResetBattery восстанавливает заряд
// @Summary Зарядить батарею
// @Description Возвращает заряд к 100% и заново взводит оповещение о разряде
// @Tags Device
// @Produce json
// @Success 200 {object} engine.Stats "Статистика после зарядки"
// @Router /device/battery/reset [post]
func (h *HTTPHandler) ResetBattery(w http.ResponseWriter, r *http.Request) {
	h.engine.ResetBattery()
	respondJSON(w, http.StatusOK, h.engine.GetStats())
}

// Reset возвращает эмулятор к заводским значениям
// @Summary Сбросить эмулятор
// @Description Сбрасывает все каналы и счетчики к начальным значениям. Работающий эмулятор нужно сначала остановить
// @Tags Device
// @Produce json
// @Success 200 {object} engine.Stats "Статистика после сброса"
// @Failure 409 {object} map[string]interface{} "Эмулятор запущен"
// @Router /device/reset [post]
func (h *HTTPHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h.engine.Running() {
		respondError(w, http.StatusConflict, "Stop the emulator before reset")
		return
	}

	h.engine.Reset()
	respondJSON(w, http.StatusOK, h.engine.GetStats())
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
