// Package bookapi wraps the Naver Open API search endpoints used by the
// book browsing flow.
//
// Requests carry the X-Naver-Client-Id and X-Naver-Client-Secret headers,
// are paced by a token-bucket limiter, and pass through a circuit breaker
// that stops calling the API after repeated failures. The <b> highlight
// markup the API inserts around matched words is stripped from every text
// field before results are returned.
package bookapi
