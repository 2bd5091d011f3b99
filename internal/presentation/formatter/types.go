package formatter

import "time"

// SeriesSummary is one line of the series listing.
type SeriesSummary struct {
	Path       string
	Series     string // platform/account/metric, or the path when attributes are absent
	Kind       string
	Name       string
	URL        string
	Records    int
	LastValue  string
	LastUpdate time.Time
	Problem    string
}
