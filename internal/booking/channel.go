package booking

// Canonical sales channels.
const (
	ChannelViator  = "Viator"
	ChannelWebsite = "Website"
)

// ViatorSources are the raw channel values sold through Viator. Every
// other value, including GYG, OTA and Website, is a website sale.
var ViatorSources = []string{"Viator", "Bokun"}

// CanonicalChannels is the full output range of ClassifyChannel.
var CanonicalChannels = []string{ChannelViator, ChannelWebsite}

// ClassifyChannel maps a raw channel value to Viator or Website.
func ClassifyChannel(raw string) string {
	for _, s := range ViatorSources {
		if raw == s {
			return ChannelViator
		}
	}
	return ChannelWebsite
}
