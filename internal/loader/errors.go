package loader

import "fmt"

// Kind classifies fetch failures.
type Kind string

const (
	KindNetwork Kind = "network"
	KindTimeout Kind = "timeout"
)

// FetchError indicates the resource could not be retrieved. Status is set for
// non-2xx HTTP responses.
type FetchError struct {
	Kind    Kind
	Locator string
	Status  int
	Err     error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "fetch failed"
	}
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s error: status %d: %v", e.Locator, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s error: %v", e.Locator, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout reports whether the fetch never completed in time.
func (e *FetchError) Timeout() bool { return e != nil && e.Kind == KindTimeout }
