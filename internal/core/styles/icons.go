package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Notification icons by kind.
var (
	IconNotifySuccess = "" //
	IconNotifyError   = "" //
	IconNotifyWarning = "" //
	IconNotifyInfo    = "" //
)

// Misc icons.
var (
	IconDeck   = "" //
	IconClock  = "" //
	IconGear   = "" //
	IconPrompt = "❯" // ❯
)

// NotifyIcon returns the display icon for a notification kind.
// Unrecognized kinds fall back to the info icon.
func NotifyIcon(kind string) string {
	switch kind {
	case "success":
		return IconNotifySuccess
	case "error":
		return IconNotifyError
	case "warning":
		return IconNotifyWarning
	default:
		return IconNotifyInfo
	}
}
