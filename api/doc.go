// Package api provides the HTTP layer of the reader view service.
// It uses the Huma framework on a chi router for the JSON endpoints and
// mounts plain chi handlers for the pages and scripts browsers load.
//
// # Architecture
//
// - server.go: Huma configuration, CORS, logging and rate limiting
// - handlers/: extraction endpoints and the viewer, bookmarklet and engine routes
// - dto/: request and response bodies
// - middleware/: request IDs, request logging, outbound fetch logging, rate limiting
//
// # Routes
//
//	POST /api/extract          {url}   -> {success, data} | {error}
//	POST /api/extract/batch    {urls}  -> {results: [{url, success, data|error, status}]}
//	GET  /reader                        viewer page, optional ?data= inline article
//	GET  /bookmarklet.js                injectable extraction script
//	GET  /bookmarklet                   javascript: loader link
//	GET  /engine/readability.js         proxied extraction engine
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router, stop := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	})
//	defer stop()
//
//	handlers.NewExtractHandler(readerService, flags).RegisterRoutes(humaAPI)
//	viewer.RegisterRoutes(router)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Every error body has the shape {"error": "<message>"}. Extraction failures
// are mapped onto statuses by their classification: invalid input 400,
// forbidden 403, not extractable 422, rate limited 429, unreachable 502,
// timeout 504 and otherwise the upstream status.
package api
