package entity

// Banner kinds
const (
	BannerSuccess = "success"
	BannerError   = "error"
)

// Banner is the dismissible message shown above a form after an action
type Banner struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SuccessBanner builds a success banner
func SuccessBanner(msg string) *Banner {
	return &Banner{Kind: BannerSuccess, Message: msg}
}

// ErrorBanner builds an error banner
func ErrorBanner(msg string) *Banner {
	return &Banner{Kind: BannerError, Message: msg}
}
