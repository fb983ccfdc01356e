package fetcher

import (
	"context"
	"errors"
	"fmt"

	"gcc-market-sync/internal/sync/dto"
)

// ErrorKind distinguishes provider failure classes so rate-limit and auth
// problems are reported rather than folded into "no data".
type ErrorKind string

const (
	KindUnavailable ErrorKind = "unavailable"
	KindRateLimited ErrorKind = "rate_limited"
	KindAuth        ErrorKind = "auth"
)

// SourceError wraps a provider failure with its source name and kind.
type SourceError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source %s: %v", e.Kind, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// KindOf returns the error kind if err is a SourceError, otherwise
// KindUnavailable.
func KindOf(err error) ErrorKind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnavailable
}

// StockSource produces normalized quotes for the given tickers. Calls are
// side-effect-free with respect to the store; a failing upstream must not
// abort the whole fetch, so implementations return the subset that
// succeeded along with an error describing what failed.
type StockSource interface {
	Name() string
	FetchQuotes(ctx context.Context, tickers []string) ([]dto.StockQuote, error)
}

// NewsSource produces normalized articles. Tickers is the universe of
// instruments worth tagging; implementations may ignore it.
type NewsSource interface {
	Name() string
	FetchArticles(ctx context.Context, tickers []string) ([]dto.NewsArticle, error)
}

// IndexSource produces current values for the tracked market indices.
type IndexSource interface {
	Name() string
	FetchIndices(ctx context.Context) ([]dto.IndexQuote, error)
}
