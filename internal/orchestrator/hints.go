package orchestrator

// Provider hint codes are translated to user-safe progress text here.
// The vocabulary is open-ended; unknown codes fall back to a generic
// waiting message instead of leaking provider internals to the UI.
var progressMessages = map[string]string{
	"outstandingTransaction": "Searching for your device...",
	"started":                "Searching for your device...",
	"noClient":               "Start your BankID app",
	"userSign":               "Enter your security code in the BankID app",
	"userMrtd":               "Present your physical ID document in the app",
	"userCallConfirm":        "Answer the incoming call to confirm",
}

const genericWaitingMessage = "Waiting for the BankID app..."

// Terminal failure hints get their own phrasing; anything unrecognized
// collapses to the generic failure text.
var failureMessages = map[string]string{
	"expiredTransaction": "Authentication timed out. Please try again.",
	"userCancel":         "Authentication was cancelled in the app.",
	"certificateErr":     "Your BankID could not be used. Contact your bank.",
	"startFailed":        "The BankID app could not be started. Please try again.",
}

const genericFailureMessage = "Authentication failed. Please try again."

func progressMessage(hintCode string) string {
	if message, ok := progressMessages[hintCode]; ok {
		return message
	}
	return genericWaitingMessage
}

func failureMessage(hintCode string) string {
	if message, ok := failureMessages[hintCode]; ok {
		return message
	}
	return genericFailureMessage
}
