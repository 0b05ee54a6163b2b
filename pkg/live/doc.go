// Package live is the preview server for developing against the
// runtime. It serves the current render as plain HTML, then streams
// binary patch frames over a WebSocket: each connected session owns a
// private tree that mirrors the client page, and every refresh morphs
// that tree against a fresh render and ships only the diff.
//
//	src := func() *vdom.Node { return view() }
//	srv := live.NewServer(cfg, src)
//	go srv.ListenAndServe(ctx)
//	...
//	srv.Refresh() // after state changes
package live
