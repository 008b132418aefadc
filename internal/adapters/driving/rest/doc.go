// Package rest exposes metro over a JSON HTTP API.
//
// Routes:
//
//	GET    /paths?source=&target=&age=
//	GET    /stations
//	GET    /lines
//	GET    /lines/{id}
//	POST   /lines/{id}/sections
//	DELETE /lines/{id}/sections?stationId=
//	GET    /favorites
//	POST   /favorites
//	DELETE /favorites/{id}
//
// Station and line path values accept an ID or a unique name. Favorites are
// scoped to the member named by the X-Member-ID header.
package rest
