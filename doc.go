// Package relay42 provides a Go SDK for the Relay42 tracking collector.
//
// The SDK turns engagements, profile facts and identity mappings into
// pixel-style HTTP GET requests. Every call is fire-and-forget: it never
// blocks, never retries, and delivers exactly one Result on the returned
// channel.
//
// Basic usage:
//
//	client := relay42.New(relay42.Config{SiteID: "1232"})
//	defer client.Close()
//
//	res := <-client.TrackEngagement(ctx, relay42.Engagement{
//	    UUID:       "u1",
//	    Type:       "ProductView",
//	    Properties: map[string]string{"productId": "1630"},
//	})
//	if res.Err != nil {
//	    // the collector did not acknowledge the event
//	}
//
// Applications that prefer a process-wide client can call Configure once at
// startup and use the package-level TrackEngagement, TrackFact and
// SyncMapping functions instead.
package relay42

// Version is the SDK version.
const Version = "0.1.0"
