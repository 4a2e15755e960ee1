package stats

import "sync"

// SkipReason classifies why a record was dropped from a report.
type SkipReason string

const (
	SkipBadTotal          SkipReason = "bad_total"
	SkipBadDate           SkipReason = "bad_date"
	SkipUnknownAgent      SkipReason = "unknown_agent"
	SkipNoAgent           SkipReason = "no_agent"
	SkipNoProduct         SkipReason = "no_product"
	SkipUnresolvedSection SkipReason = "unresolved_section"
	SkipOtherStatus       SkipReason = "other_status"
)

// SkipObserver is notified once per dropped record. Reports degrade
// silently by design; the observer exists so callers can count or log the
// drops without changing control flow.
type SkipObserver func(report string, reason SkipReason)

// SkipCounter is a ready-made observer that tallies skips per report and
// reason. Safe for concurrent use.
type SkipCounter struct {
	mu     sync.Mutex
	counts map[string]map[SkipReason]int
}

func NewSkipCounter() *SkipCounter {
	return &SkipCounter{counts: make(map[string]map[SkipReason]int)}
}

func (c *SkipCounter) Observe(report string, reason SkipReason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts[report] == nil {
		c.counts[report] = make(map[SkipReason]int)
	}
	c.counts[report][reason]++
}

func (c *SkipCounter) Count(report string, reason SkipReason) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[report][reason]
}

func (c *SkipCounter) Total(report string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.counts[report] {
		total += n
	}
	return total
}
