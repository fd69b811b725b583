package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/alexanderchen5966/cwa-weather-api/internal/model"
	"github.com/alexanderchen5966/cwa-weather-api/internal/service"
	"github.com/alexanderchen5966/cwa-weather-api/internal/upstream"
)

type WeatherHandler struct {
	LookupService service.LookupServiceInterface
}

func NewWeatherHandler(svc service.LookupServiceInterface) *WeatherHandler {
	return &WeatherHandler{LookupService: svc}
}

func (h *WeatherHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("could not encode json: %v", err)
	}
}

func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodGet)
		h.writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	location := r.URL.Query().Get("location")
	if location == "" {
		errMsg := "Missing 'location' query parameter"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	var timeout time.Duration
	if raw := r.URL.Query().Get("timeout"); raw != "" {
		dur, err := time.ParseDuration(raw)
		if err != nil {
			errMsg := "Invalid 'timeout' query parameter"
			h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
				Error:   &errMsg,
				Message: "Error",
			})
			return
		}
		timeout = dur
	}

	result := h.LookupService.Lookup(r.Context(), location, timeout)

	switch result.Status {
	case model.StatusResolved:
		h.writeJSONResponse(w, http.StatusOK, model.Response{
			Data:    result,
			Message: "Success",
		})
	case model.StatusAmbiguous:
		// The caller disambiguates; the candidate list is the payload.
		h.writeJSONResponse(w, http.StatusMultipleChoices, model.Response{
			Data:    result,
			Message: "Ambiguous location, pick a candidate",
		})
	case model.StatusNoMatch:
		errMsg := "No known location matches '" + location + "'"
		h.writeJSONResponse(w, http.StatusNotFound, model.Response{
			Data:    result,
			Error:   &errMsg,
			Message: "Error",
		})
	default:
		status := http.StatusBadGateway
		errMsg := "Failed to fetch weather data"
		if result.Failure != nil {
			errMsg = "Failed to fetch weather data: " + result.Failure.Kind
			if result.Failure.Kind == string(upstream.KindTimeout) {
				status = http.StatusGatewayTimeout
			}
		}
		h.writeJSONResponse(w, status, model.Response{
			Data:    result,
			Error:   &errMsg,
			Message: "Error",
		})
	}
}
