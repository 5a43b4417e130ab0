package orchestrator

import "github.com/mssola/useragent"

// appLaunchURL returns the deep-link that opens the BankID app directly,
// but only when the calling device looks like it can handle it. Desktop
// browsers get an empty string and fall back to the QR flow.
func appLaunchURL(autoStartToken, rawUserAgent string) string {
	if autoStartToken == "" || rawUserAgent == "" {
		return ""
	}
	ua := useragent.New(rawUserAgent)
	if !ua.Mobile() {
		return ""
	}
	return "bankid:///?autostarttoken=" + autoStartToken + "&redirect=null"
}
