package webapp

import (
	"fmt"
	"net/http"

	"github.com/askele/borealis/internal/logutil"
)

// HandleFinder renders the aurora finder page with the coordinate
// form. Guarded.
func (a *App) HandleFinder(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "finder.html", nil)
}

// HandleAurora queries the forecast API for the submitted coordinate
// and renders the probability summary on the finder page.
func (a *App) HandleAurora(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("latitude")
	long := r.URL.Query().Get("longitude")
	forecast, err := a.Aurora.Probability(r.Context(), lat, long)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to fetch aurora forecast")
		http.Error(w, "Error retrieving aurora data", http.StatusInternalServerError)
		return
	}
	p := forecast.Probability
	a.render(w, r, http.StatusOK, "finder.html", map[string]any{
		"Forecast": map[string]string{
			"NearbyProb": fmt.Sprintf("is %v%%.", p.Calculated.Value),
			"AuroraProb": fmt.Sprintf("is %v%%.", p.Value),
			"BestProb":   fmt.Sprintf("is %v%%", p.Highest.Value),
			"BestSpot":   fmt.Sprintf("at the coordinate location (%v, %v).", p.Highest.Lat, p.Highest.Long),
		},
	})
}
