// Package httpclient provides the HTTP transport used to download
// icons.
//
// The Client in this package handles:
//   - The fixed identifying User-Agent header
//   - Per-request timeouts
//   - Redirect following (net/http default)
//
// It deliberately does not interpret status codes: Fetch hands back the
// status, headers and streamed body and leaves classification to the
// fetch task.
//
// # Basic Usage
//
//	client := httpclient.NewClient(8 * time.Second)
//	resp, err := client.Fetch(ctx, "http://example.com/favicon.ico")
//	if err != nil {
//	    // transport failure
//	}
//	defer resp.Body.Close()
package httpclient
