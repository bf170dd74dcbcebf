// Package server wraps http.Server with sane timeouts, optional static
// TLS, and a graceful lifecycle designed for errgroup:
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil { ... }
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, mux))
//	if err := eg.Wait(); err != nil { ... }
//
// On context cancellation Run stops accepting connections, gives in-flight
// requests the shutdown timeout to finish, and returns nil.
package server
