package domain

// Script is an extraction engine source served to injected pages.
type Script struct {
	// Source is the URL the script was loaded from.
	Source string `json:"source"`

	Body        []byte `json:"body"`
	ContentType string `json:"contentType"`
}
