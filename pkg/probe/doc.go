// Package probe implements the third-party cookie check.
//
// The check runs in two steps inside a cross-site frame. Step 1 writes a
// sentinel cookie; step 2 is loaded afterwards and reads it back. If the
// browser kept the cookie, third-party cookies are enabled.
//
//	p := probe.New(probe.WithLogger(log))
//
//	// step 1
//	p.Seed(store)
//
//	// step 2
//	received, err := p.Run(ctx, store, func(ctx context.Context, received bool) error {
//	    return notifyParent(received)
//	})
//
// Run never retries. It always clears the sentinel before reporting, so a
// second Run on the same store reports false.
package probe
