package sources

import "fmt"

// AuthError reports that the feed service rejected the credentials.
type AuthError struct {
	Source string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: unauthorized, check the auth token", e.Source)
}

// FetchError reports any other unsuccessful response. Body holds the raw
// response for diagnostics.
type FetchError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Source, e.StatusCode, e.Body)
}
