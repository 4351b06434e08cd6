// Package internal is the HTTP layer of the service: a chi router behind a
// small Context API, global middleware, health endpoints and a runtime with
// graceful shutdown.
//
// Handlers implement Handler and declare routes on a Router. Route handlers
// return errors instead of writing them; the App's ErrorHandler turns them
// into responses. *HTTPError carries a status and client-facing message.
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithCookieOptions(cookie.CrossSite()...),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHealthChecks(),
//	    internal.WithHandlers(checker.New(prober, store)),
//	)
//	err := app.Run(":8080", internal.CloseHook(store.Close))
package internal
