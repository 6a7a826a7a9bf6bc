package domain

// PageState represents the lifecycle state of a page.
type PageState string

const (
	PageIdle        PageState = "idle"
	PageFetching    PageState = "fetching"
	PageLoaded      PageState = "loaded"
	PageFetchFailed PageState = "fetch_failed"
	PageDirty       PageState = "dirty"
	PageSaving      PageState = "saving"
	PageSaveFailed  PageState = "save_failed"
)

// validPageTransitions defines the allowed state machine transitions.
var validPageTransitions = map[PageState][]PageState{
	PageIdle:        {PageFetching, PageDirty, PageSaving},
	PageFetching:    {PageLoaded, PageFetchFailed},
	PageFetchFailed: {PageFetching},
	PageLoaded:      {PageFetching, PageDirty, PageSaving},
	PageDirty:       {PageDirty, PageSaving, PageFetching},
	PageSaving:      {PageLoaded, PageSaveFailed},
	PageSaveFailed:  {PageDirty, PageSaving, PageFetching},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s PageState) CanTransitionTo(next PageState) bool {
	for _, allowed := range validPageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Busy reports whether a request is in flight.
func (s PageState) Busy() bool {
	return s == PageFetching || s == PageSaving
}
