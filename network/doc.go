// Package network is the request pipeline shared by every remote fetch in
// marquee.
//
// A fetch goes through three stages:
//
//   - Transport: one GET with fixed JSON headers, a 30s time-to-first-byte
//     and a 300s total budget. The raw result is classified into an Outcome.
//   - Coordinator: retries network errors and 5xx responses a bounded number
//     of times with a fixed backoff, and keeps at most one chain per URL in
//     flight. Duplicate callers share the running chain's outcome.
//   - Decode: all-or-nothing JSON decoding into the target type, with
//     `validate:"required"` struct tags enforced.
//
// # Usage
//
//	client := network.NewClient(logger)
//	resp, err := network.FetchResource[tmdb.MovieTitleResponse](ctx, client, url)
//	if errors.Is(err, network.ErrNoData) {
//		// show empty state
//	}
//
// # Error Handling
//
// Every failure is a *Error with one of the kinds KindBadURL, KindNoData,
// KindDecoding, KindNetwork or KindInvalidResponse. Use errors.Is with the
// package sentinels, or errors.As to read StatusCode and Message.
package network
