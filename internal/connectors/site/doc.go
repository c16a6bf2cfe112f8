// Package site provides a connector for external site search endpoints.
//
// Each endpoint returns its full document set as a JSON array when called
// with the shared secret:
//
//	GET https://news.example.org/search?secret=<token>
//
// Endpoints are fetched concurrently and independently. A failed endpoint
// yields a failed snapshot so the reconciliation never mistakes an outage
// for an empty site.
package site
