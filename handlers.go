package main

import (
	"net/http"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/google/uuid"
)

// This file contains the HTTP handlers that make up the display surface's
// contract: one endpoint to trigger a lookup and one to read the observable
// lookup state. Handlers never expose domain structs directly; they format
// snapshots into the JSON display model.

var displayCaser = cases.Title(language.English)

// handlerLookup triggers one lookup and returns the resulting state snapshot.
// A place name takes precedence over coordinates; with neither, the
// configured default coordinates stand in for "use current location".
// Lookup failures are part of the state, not HTTP errors: the response is
// 200 with the error phase inside.
func (cfg *apiConfig) handlerLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}

	ctx := r.Context()
	query := r.URL.Query()
	city := query.Get("city")
	latStr := query.Get("lat")
	lonStr := query.Get("lon")

	var snap LookupSnapshot
	switch {
	case city != "":
		snap = cfg.LookupByName(ctx, city)
	case latStr != "" && lonStr != "":
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			cfg.respondWithError(w, http.StatusBadRequest, "Invalid latitude", err)
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			cfg.respondWithError(w, http.StatusBadRequest, "Invalid longitude", err)
			return
		}
		snap = cfg.LookupByCoordinates(ctx, lat, lon)
	default:
		cfg.logger.Debug("no location in request, using default coordinates",
			"lat", cfg.defaultLat, "lon", cfg.defaultLon)
		snap = cfg.LookupByCoordinates(ctx, cfg.defaultLat, cfg.defaultLon)
	}

	cfg.respondWithJSON(w, http.StatusOK, snapshotToResponse(snap))
}

// handlerState returns the current observable lookup state without
// triggering any network activity.
func (cfg *apiConfig) handlerState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}
	cfg.respondWithJSON(w, http.StatusOK, snapshotToResponse(cfg.state.Snapshot()))
}

// snapshotToResponse formats a lookup snapshot into the JSON display model.
// Condition descriptions are title-cased for display; the stored domain data
// keeps the upstream's casing.
func snapshotToResponse(snap LookupSnapshot) LookupStateResponse {
	response := LookupStateResponse{
		Phase:     string(snap.Phase),
		Error:     snap.ErrorMsg,
		Synthetic: snap.Synthetic,
		Hourly:    make([]HourlyPointJSON, len(snap.Hourly)),
		Daily:     make([]DailyPointJSON, len(snap.Daily)),
	}
	if snap.LookupID != uuid.Nil {
		response.LookupID = snap.LookupID.String()
	}

	if snap.Current != nil {
		response.Current = &CurrentConditionsJSON{
			PlaceName:   snap.Current.PlaceName,
			Temperature: snap.Current.Temperature,
			FeelsLike:   snap.Current.FeelsLike,
			Humidity:    snap.Current.Humidity,
			Condition:   conditionLabel(snap.Current.Category),
			Description: displayCaser.String(snap.Current.Description),
			Icon:        glyphForIcon(snap.Current.Icon),
		}
	}

	for i, point := range snap.Hourly {
		response.Hourly[i] = HourlyPointJSON{
			Time:        point.Time,
			Temperature: point.Temperature,
			Icon:        point.Icon,
		}
	}
	for i, point := range snap.Daily {
		response.Daily[i] = DailyPointJSON{
			Day:       point.Day,
			Condition: displayCaser.String(point.Condition),
			Icon:      point.Icon,
			HighTemp:  point.HighTemp,
			LowTemp:   point.LowTemp,
		}
	}

	return response
}
