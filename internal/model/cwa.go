package model

// CWAForecastResponse mirrors the slice of the CWA F-C0032-001 datastore
// response the service reads. Anything else in the payload is ignored.
type CWAForecastResponse struct {
	Success string `json:"success"`
	Records struct {
		Location []CWALocation `json:"location"`
	} `json:"records"`
}

type CWALocation struct {
	LocationName   string              `json:"locationName"`
	WeatherElement []CWAWeatherElement `json:"weatherElement"`
}

type CWAWeatherElement struct {
	ElementName string        `json:"elementName"`
	Time        []CWATimeSlot `json:"time"`
}

type CWATimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Parameter struct {
		ParameterName string `json:"parameterName"`
		ParameterUnit string `json:"parameterUnit,omitempty"`
	} `json:"parameter"`
}
