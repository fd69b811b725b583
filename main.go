package main

import (
	"net/http"
	"os"

	"github.com/alexanderchen5966/cwa-weather-api/internal/catalog"
	"github.com/alexanderchen5966/cwa-weather-api/internal/config"
	"github.com/alexanderchen5966/cwa-weather-api/internal/handler"
	"github.com/alexanderchen5966/cwa-weather-api/internal/resolver"
	"github.com/alexanderchen5966/cwa-weather-api/internal/service"
)

func main() {
	logger := config.GetLogger()

	cat, err := loadCatalog()
	if err != nil {
		logger.Fatalw("catalog load failed", "error", err)
	}
	logger.Infow("catalog loaded", "entries", cat.Len())

	corrections := resolver.DefaultCorrections()
	for k, v := range config.GetResolverCorrections() {
		corrections[k] = v
	}

	res := resolver.New(cat, corrections)
	svc := service.NewWeatherService(res)

	http.HandleFunc("/weather", handler.NewWeatherHandler(svc).HandleWeather)

	port := config.GetServerPort()
	logger.Infow("weather lookup server running", "port", port)
	logger.Fatal(http.ListenAndServe(":"+port, nil))
}

// loadCatalog reads the configured catalog file, falling back to the built-in
// CWA region set when no path is configured.
func loadCatalog() (*catalog.Catalog, error) {
	path := config.GetCatalogPath()
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.Load(f)
}
