package tramline

import (
	"net/http"

	"github.com/theoremus-urban-solutions/tramline/utils"
)

type healthResponse struct {
	Status          string `json:"status"`
	Time            string `json:"time"`
	Stations        int    `json:"stations"`
	Lines           int    `json:"lines"`
	Vehicles        int    `json:"vehicles"`
	Ticks           int    `json:"ticks"`
	LatestFeedEpoch int64  `json:"latest_feed_epoch"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	net := h.svc.Network()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Time:            utils.Iso8601Now(),
		Stations:        net.NumStations(),
		Lines:           len(net.Colors()),
		Vehicles:        len(h.svc.Markers()),
		Ticks:           h.svc.Ticks(),
		LatestFeedEpoch: h.svc.FeedTimestamp(),
	})
}
