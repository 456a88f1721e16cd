// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - TUI with isochrone map view, background sweeps, day-length arc
// 0.3.0 - HTTP API, gazetteer endpoints, GeoJSON curve and band export
// 0.2.0 - Inverse solvers: latitude/longitude isochrones, asr fold handling
// 0.1.0 - Initial release: forward timetable, seven methods, high-latitude clamps
