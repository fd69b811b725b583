package upstream

import (
	"strconv"
	"time"

	"github.com/alexanderchen5966/cwa-weather-api/internal/model"
)

// cwaTimeLayout is the timestamp format of F-C0032-001 time slots.
const cwaTimeLayout = "2006-01-02 15:04:05"

// parseForecast extracts the forecast slot closest to now from a decoded CWA
// response. A response without a usable location or Wx element is malformed.
func parseForecast(stationID string, data *model.CWAForecastResponse, now time.Time) (*model.Forecast, error) {
	if len(data.Records.Location) == 0 {
		return nil, &Error{Kind: KindMalformedResponse, Detail: "no location records for " + stationID}
	}
	loc := data.Records.Location[0]

	wx := findElement(loc.WeatherElement, "Wx")
	if wx == nil || len(wx.Time) == 0 {
		return nil, &Error{Kind: KindMalformedResponse, Detail: "no Wx element for " + loc.LocationName}
	}

	slot, start, ok := nearestSlot(wx.Time, now)
	if !ok {
		return nil, &Error{Kind: KindMalformedResponse, Detail: "unparseable Wx time slots"}
	}
	end, err := time.ParseInLocation(cwaTimeLayout, slot.EndTime, now.Location())
	if err != nil {
		end = start
	}

	desc := slot.Parameter.ParameterName
	forecast := &model.Forecast{
		Station:     loc.LocationName,
		Description: desc,
		WeatherType: model.ClassifyWeather(desc),
		RainChance:  rainChance(loc.WeatherElement, slot),
		SlotStart:   start,
		SlotEnd:     end,
		FetchedAt:   now,
	}
	return forecast, nil
}

func findElement(elements []model.CWAWeatherElement, name string) *model.CWAWeatherElement {
	for i := range elements {
		if elements[i].ElementName == name {
			return &elements[i]
		}
	}
	return nil
}

// nearestSlot picks the time slot whose start is closest to now, matching how
// the CWA feed is meant to be read for "current" conditions.
func nearestSlot(slots []model.CWATimeSlot, now time.Time) (model.CWATimeSlot, time.Time, bool) {
	var (
		best      model.CWATimeSlot
		bestStart time.Time
		bestDiff  time.Duration
		found     bool
	)
	for _, slot := range slots {
		start, err := time.ParseInLocation(cwaTimeLayout, slot.StartTime, now.Location())
		if err != nil {
			continue
		}
		diff := now.Sub(start)
		if diff < 0 {
			diff = -diff
		}
		if !found || diff < bestDiff {
			best, bestStart, bestDiff, found = slot, start, diff, true
		}
	}
	return best, bestStart, found
}

// rainChance finds the PoP value for the same slot, -1 when absent.
func rainChance(elements []model.CWAWeatherElement, slot model.CWATimeSlot) int {
	pop := findElement(elements, "PoP")
	if pop == nil {
		return -1
	}
	for _, t := range pop.Time {
		if t.StartTime == slot.StartTime && t.EndTime == slot.EndTime {
			if v, err := strconv.Atoi(t.Parameter.ParameterName); err == nil {
				return v
			}
			return -1
		}
	}
	return -1
}
