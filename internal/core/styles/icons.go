package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconBell    = "\U000F009A" // 󰂚
	IconSearch  = ""
	IconHistory = ""
	IconPause   = ""
	IconClose   = ""
)

// Notification kind icons
var (
	IconSuccess = ""
	IconError   = ""
	IconWarning = ""
	IconInfo    = ""
)

// Search category icons
var (
	IconProject = ""
	IconCode    = ""
	IconDocs    = ""
)
