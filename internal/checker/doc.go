// Package checker serves the browser side of the third-party cookie check.
//
// Routes:
//
//	GET /step1?id=      seed the sentinel, redirect to step2
//	GET /step2?id=      page defining the completion callback
//	GET /step2.js?id=   run the check, call the callback with the outcome
//	GET /results/{id}   recorded outcome as JSON
//
// The cookie manager on the app must write cross-site cookies
// (SameSite=None; Secure) for step 1 to survive in a third-party frame.
package checker
