package types

import "fmt"

// SearchParams captures one user search intent. Values are treated as
// immutable per request: pagination rounds derive new values via
// WithExcludeNames rather than mutating the caller's copy.
type SearchParams struct {
	Location string `json:"location" validate:"required"`
	Niche    string `json:"niche" validate:"required"`
	Type     string `json:"type,omitempty"`
	Radius   string `json:"radius,omitempty"` // empty means "unscoped"

	WhatsAppOnly bool `json:"whatsappOnly,omitempty"`
	FastMode     bool `json:"fastMode,omitempty"`

	DeepSearchWeb       bool `json:"deepSearchWeb,omitempty"`
	DeepSearchInstagram bool `json:"deepSearchInstagram,omitempty"`
	DeepSearchFacebook  bool `json:"deepSearchFacebook,omitempty"`
	DeepSearchLinkedin  bool `json:"deepSearchLinkedin,omitempty"`

	// ExcludeNames holds names already collected; it grows across
	// pagination rounds so the model avoids repeating them.
	ExcludeNames []string `json:"excludeNames,omitempty"`
}

// Validate checks the required search inputs.
func (p SearchParams) Validate() error {
	if p.Location == "" {
		return &MissingParamError{Param: "location"}
	}
	if p.Niche == "" {
		return &MissingParamError{Param: "niche"}
	}
	return nil
}

// DeepSearchEnabled reports whether any cross-reference platform was requested.
func (p SearchParams) DeepSearchEnabled() bool {
	return p.DeepSearchWeb || p.DeepSearchInstagram || p.DeepSearchFacebook || p.DeepSearchLinkedin
}

// DeepSearchPlatforms lists the requested platforms in a stable order.
func (p SearchParams) DeepSearchPlatforms() []string {
	var platforms []string
	if p.DeepSearchWeb {
		platforms = append(platforms, "website")
	}
	if p.DeepSearchInstagram {
		platforms = append(platforms, "instagram")
	}
	if p.DeepSearchFacebook {
		platforms = append(platforms, "facebook")
	}
	if p.DeepSearchLinkedin {
		platforms = append(platforms, "linkedin")
	}
	return platforms
}

// WithExcludeNames returns a copy of the params carrying the given exclusion
// list. The slice is cloned so neither value aliases the other.
func (p SearchParams) WithExcludeNames(names []string) SearchParams {
	out := p
	out.ExcludeNames = make([]string, len(names))
	copy(out.ExcludeNames, names)
	return out
}

// WithFastMode returns a copy of the params with the fast-mode flag set.
func (p SearchParams) WithFastMode(fast bool) SearchParams {
	out := p
	out.FastMode = fast
	return out
}

// MissingParamError indicates a required search input was not provided.
// It blocks starting a search; it is not an upstream failure.
type MissingParamError struct {
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required search parameter: %s", e.Param)
}
