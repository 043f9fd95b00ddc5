// Package shutdown ties SIGINT/SIGTERM to ordered resource teardown.
//
// The server registers one hook per resource during startup; on the
// first signal the hooks run newest-first under a shared deadline, so
// the HTTP listener drains before the watchers behind it stop. A
// second signal bypasses the hooks and kills the process.
//
//	handler := shutdown.NewHandler(30 * time.Second)
//	handler.OnShutdown(func(ctx context.Context) error {
//		return httpServer.Shutdown(ctx)
//	})
//	return handler.Wait()
//
// @design DS-0501
package shutdown
