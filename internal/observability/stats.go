package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	PagesFetched        uint64            `json:"pages_fetched"`
	ItemsExtracted      uint64            `json:"items_extracted"`
	SuggestCalls        uint64            `json:"suggest_calls"`
	CandidatesSuggested uint64            `json:"candidates_suggested"`
	RobotsSkips         uint64            `json:"robots_skips"`
	ErrorsTotal         uint64            `json:"errors_total"`
	FetchSecondsAvg     float64           `json:"fetch_seconds_avg"`
	ErrorsByType        map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent   map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	pagesFetched        uint64
	itemsExtracted      uint64
	suggestCalls        uint64
	candidatesSuggested uint64
	robotsSkips         uint64
	errorsTotal         uint64

	fetchCount uint64
	fetchNanos uint64

	statsMu           sync.Mutex
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPageFetched() {
	atomic.AddUint64(&pagesFetched, 1)
}

func IncItemExtracted() {
	atomic.AddUint64(&itemsExtracted, 1)
}

func IncSuggestCall() {
	atomic.AddUint64(&suggestCalls, 1)
}

func AddCandidatesSuggested(n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&candidatesSuggested, uint64(n))
}

func IncRobotsSkip() {
	atomic.AddUint64(&robotsSkips, 1)
}

func ObserveFetchDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&fetchCount, 1)
	atomic.AddUint64(&fetchNanos, uint64(seconds*1e9))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	count := atomic.LoadUint64(&fetchCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&fetchNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		PagesFetched:        atomic.LoadUint64(&pagesFetched),
		ItemsExtracted:      atomic.LoadUint64(&itemsExtracted),
		SuggestCalls:        atomic.LoadUint64(&suggestCalls),
		CandidatesSuggested: atomic.LoadUint64(&candidatesSuggested),
		RobotsSkips:         atomic.LoadUint64(&robotsSkips),
		ErrorsTotal:         atomic.LoadUint64(&errorsTotal),
		FetchSecondsAvg:     avg,
		ErrorsByType:        errorsTypeCopy,
		ErrorsByComponent:   errorsComponentCopy,
	}
}

// Reset zeroes every counter. Tests rely on it; production code never
// resets mid-run.
func Reset() {
	atomic.StoreUint64(&pagesFetched, 0)
	atomic.StoreUint64(&itemsExtracted, 0)
	atomic.StoreUint64(&suggestCalls, 0)
	atomic.StoreUint64(&candidatesSuggested, 0)
	atomic.StoreUint64(&robotsSkips, 0)
	atomic.StoreUint64(&errorsTotal, 0)
	atomic.StoreUint64(&fetchCount, 0)
	atomic.StoreUint64(&fetchNanos, 0)
	statsMu.Lock()
	errorsByType = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
	statsMu.Unlock()
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
