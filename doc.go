// Package statica serves files from a directory over HTTP without tying itself to a
// router or server.
//
// A host router hands statica a Request (method, decoded path, route-captured suffix,
// lower-case headers) and writes back the Response it gets: a status, ordered headers
// and an optional Body that yields the file in bounded chunks.
//
// # Key Components
//
//   - Resolver: maps a request path into the static root, rejecting traversal and
//     appending the index file; verifies the root directory once
//   - MetadataOf / BuildHeaders / IsNotModified: entity tags, Last-Modified and
//     If-None-Match / If-Modified-Since evaluation
//   - ChunkStream: lazy, pull-based file body that always releases its file
//   - StaticFiles: the per-request state machine tying the above together
//   - FileStorage: interface for stat/open (see the filesystem package)
//
// # Resolution Modes
//
//   - ModeRequestPath: root mounted at "/", the raw request path is resolved
//   - ModeRouteSuffix: root mounted below "/", the suffix captured by the router is
//     resolved
//
// # Example Usage
//
//	files, err := statica.NewStaticFiles(statica.StaticRoot{
//	    Root:      "./www",
//	    IndexFile: "index.html",
//	    CheckRoot: true,
//	}, filesystem.NewFileStorage())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp := files.Serve(ctx, statica.Request{Method: "GET", Path: "/"})
//	defer resp.Close()
//
// See the http package for a net/http adapter built on chi.
package statica
