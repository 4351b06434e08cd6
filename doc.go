// Package cookiecheck detects whether a browser accepts third-party
// cookies.
//
// A page on one site frames /step1 served from another. Step 1 writes a
// sentinel cookie with cross-site attributes and redirects to step 2,
// which reads the cookie back, clears it and calls the page-level
// function _3rd_party_test_step2_loaded with the outcome. Outcomes are
// also recorded and served from /results/{id}.
//
// Embed the service in a program:
//
//	log := logger.New(logger.Config{}, cookiecheck.LogExtractors()...)
//	store := results.NewMemory(results.WithTTL(time.Hour))
//
//	app := cookiecheck.New(cookiecheck.Config{
//	    Store:  store,
//	    Logger: log,
//	})
//	if err := app.Run(":8080", cookiecheck.CloseHook(store.Close)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// The building blocks live in subpackages: pkg/cookie for cookie string
// parsing and stores, pkg/probe for the check sequence, pkg/results for
// outcome storage. cmd/cookiecheck is the standalone binary.
package cookiecheck
