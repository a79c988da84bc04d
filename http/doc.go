// Package http exposes a statica.StaticFiles through net/http.
//
// The package owns nothing but the glue: routing, request conversion and response
// writing. Path resolution, conditional requests and streaming stay in statica.
//
// # Features
//
//   - chi router mounting the static root at its mount prefix ("/prefix/*")
//   - Route-suffix capture handed to statica for prefixed mounts
//   - Response writer that reads the first body chunk before committing headers
//   - Request ids (X-Request-ID, UUID) and structured access logs via slog
//   - Configurable CORS support
//
// # Usage
//
//	files, err := statica.NewStaticFiles(statica.StaticRoot{
//	    Root:        "./public",
//	    MountPrefix: "/static",
//	    IndexFile:   "index.html",
//	}, filesystem.NewFileStorage())
//	if err != nil {
//	    return err
//	}
//
//	handler := http.NewHandler(&http.HandlerConfig{}, files)
//	server := &nethttp.Server{Addr: ":8080", Handler: handler.Router()}
//
// Requests outside the mount prefix get a plain text 404. Requests below it are
// passed to the service for every method, so the service decides on 405.
//
// # Middleware
//
// RequestID and AccessLog are installed by Router but can be used on their own:
//
//	router.Use(http.RequestID)
//	router.Use(http.AccessLog(logger))
package http
