// vi: sw=4 ts=4:

/*

	Mnemonic:	metrics
	Abstract:	Exposes the Prometheus registry alongside the admin JSON
				surface, at /metrics, for scraping.
	Date:		31 Jul 2026
*/

package adminapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
