package matching

// Reason explains why a matcher produced no results.
type Reason string

const (
	ReasonNoCorpus    Reason = "no_corpus"
	ReasonNoMatches   Reason = "no_matches"
	ReasonFilteredOut Reason = "filtered_out"
	ReasonError       Reason = "error"
)

const outcomeMatched = "matched"

// Outcome is either Matched with at least one result, or Unavailable with a
// Reason. Err is set only for ReasonError.
type Outcome[T any] struct {
	Results []T
	Reason  Reason
	Err     error
}

func Matched[T any](results []T) Outcome[T] {
	return Outcome[T]{Results: results}
}

func Unavailable[T any](reason Reason, err error) Outcome[T] {
	return Outcome[T]{Reason: reason, Err: err}
}

func (o Outcome[T]) IsMatched() bool {
	return o.Reason == ""
}

// Label is the metrics and log value for the outcome.
func (o Outcome[T]) Label() string {
	if o.IsMatched() {
		return outcomeMatched
	}
	return string(o.Reason)
}
