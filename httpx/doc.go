// Package httpx is the HTTP foundation for the OpenWeatherMap client:
// - safe, reusable transport with sane defaults
// - request building with base URL, default headers and query merging
// - error type carrying status, request id, retry-after and limited body
// - hook points for logging/metrics without hard dependencies
//
// A call is exactly one HTTP exchange. There is no retry or backoff here;
// retry policy belongs to the caller.
package httpx
