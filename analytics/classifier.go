package analytics

import "strings"

// Device is the coarse device class derived from a user-agent string.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

// Browser names produced by the classifier.
const (
	BrowserEdge    = "Edge"
	BrowserChrome  = "Chrome"
	BrowserSafari  = "Safari"
	BrowserFirefox = "Firefox"
	BrowserOpera   = "Opera"
	BrowserOther   = "Other"
)

// Classification is the result of sniffing one user-agent string.
type Classification struct {
	Device  Device
	Browser string
}

// Classifier maps a raw user-agent string to a device class and browser
// name. Implementations must be pure and total: any input, including the
// empty string, classifies to something.
type Classifier interface {
	Classify(userAgent string) Classification
}

// KeywordClassifier classifies by case-insensitive token matching. The match
// order is a contract, not an accident: Edge and Chrome both carry "Chrome"
// in their UA, and Chrome carries "Safari", so each branch excludes the ones
// above it simply by running later.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(userAgent string) Classification {
	ua := strings.ToLower(userAgent)

	device := DeviceDesktop
	switch {
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipod"):
		device = DeviceMobile
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"), strings.Contains(ua, "android"):
		// Android without a "Mobile" token is a tablet; the mobile branch
		// above already caught the phone form factor.
		device = DeviceTablet
	}

	browser := BrowserOther
	switch {
	case strings.Contains(ua, "edg"):
		browser = BrowserEdge
	case strings.Contains(ua, "chrome"):
		browser = BrowserChrome
	case strings.Contains(ua, "safari"):
		browser = BrowserSafari
	case strings.Contains(ua, "firefox"):
		browser = BrowserFirefox
	case strings.Contains(ua, "opera"), strings.Contains(ua, "opr"):
		browser = BrowserOpera
	}

	return Classification{Device: device, Browser: browser}
}
