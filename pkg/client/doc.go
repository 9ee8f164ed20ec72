// Package client provides a thin HTTP client for the data platform's
// graph-query API. It executes graph queries scoped to a subject record and
// returns the platform's success/failure envelope; transport-level problems
// surface as [APIError] values carrying the raw response body.
package client
