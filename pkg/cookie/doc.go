// Package cookie provides cookie primitives for the third-party cookie check.
//
// It has three layers:
//
//   - [Lookup] and [Format] read and write document-style cookie strings
//     ("a=1; b=2" and "name=value;expires=...;path=/").
//   - [Store] abstracts a page's cookie store. [Jar] is an in-memory
//     implementation; [Manager.Bind] returns one backed by an HTTP
//     request and response.
//   - [Manager] writes Set-Cookie headers with consistent attributes.
//
// # Reading
//
// Lookup percent-decodes the whole string, splits it on ';', trims leading
// spaces and returns the first segment that starts with "name=":
//
//	v, ok := cookie.Lookup("a=1; third_party_cookie_test=hey%20there!", "third_party_cookie_test")
//	// v = "hey there!", ok = true
//
// A missing name yields "" and false. Nothing here fails on malformed input.
//
// # Writing
//
// Expiry turns a day count into a time. [ExpiryDays] adds calendar days;
// [ExpiryLegacy] adds days*86400 milliseconds, which is what scripts that
// multiply by 24*60*60 and add to a millisecond clock actually do:
//
//	exp := cookie.Expiry(time.Now(), -2, cookie.ExpiryDays) // in the past
//	jar.Set("third_party_cookie_test", "", exp)            // deletes it
//
// # Cross-site cookies
//
// A cookie written from a cross-site frame needs SameSite=None and Secure:
//
//	m := cookie.New(cookie.CrossSite()...)
//	store := m.Bind(w, r)
//	store.Set("third_party_cookie_test", "hey there!", cookie.Expiry(time.Now(), 1, cookie.ExpiryDays))
//
// [WithPartitioned] adds the Partitioned attribute (CHIPS).
//
// # Errors
//
//   - [ErrMalformed]: assignment has no name=value pair
//   - [ErrUnknownExpiryMode]: unrecognised expiry mode name
package cookie
