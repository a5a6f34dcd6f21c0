// Package tmdb fetches movie and TV metadata from The Movie Database.
//
// Every request goes through network.FetchResource, so list and detail
// calls share per-URL dedup, bounded retries and typed decoding. This
// package only builds endpoint URLs and shapes the results.
//
// # Usage
//
//	fetcher := network.NewClient(logger)
//	client, err := tmdb.NewClient(tmdb.DefaultBaseURL, apiKey, fetcher, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	feed, err := client.Home(ctx)
//	for _, section := range feed.Sections {
//		if section.Err != nil {
//			// render an empty row
//		}
//	}
package tmdb
