// Package leads provides the lead funnel bounded context: the status state
// machine, notes, follow-up reminders, conversion into bookings, and the
// funnel analytics dashboard.
//
// Other contexts reach leads only through the ports package (what leads needs
// from them) and through domain events (what leads announces).
package leads

import "umroh_travel_backend/platform/config"

// ModuleConfig is the configuration the leads module reads.
type ModuleConfig interface {
	config.LocaleConfig
}
