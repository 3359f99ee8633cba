package request

import "strings"

const (
	ClientWeb     = "web"
	ClientAndroid = "android"
	ClientUnknown = "unknown"
)

// ResolveClientType menentukan jenis client dari header eksplisit
// atau fallback ke User-Agent.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(clientHeader)) {
	case ClientWeb:
		return ClientWeb
	case ClientAndroid, "mobile":
		return ClientAndroid
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "android") {
		return ClientAndroid
	}
	if strings.Contains(ua, "mozilla") {
		return ClientWeb
	}
	return ClientUnknown
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
