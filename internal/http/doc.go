// Package http provides an HTTP client tuned for bulk archive downloads.
//
// This package handles:
//   - Connection pooling for high parallelism
//   - Per-request timeout ceilings
//   - Status-code to error mapping
//
// Retry is deliberately not handled here: the transfer pool owns the
// attempt loop so that one task-level retry policy covers both S3 and
// HTTP fetches.
//
// # Usage
//
//	client := http.NewClient(http.Options{
//	    Timeout: 120 * time.Second,
//	})
//
//	body, err := client.Get(ctx, url)
//	defer body.Close()
package http
