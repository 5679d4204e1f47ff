package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyChannel(t *testing.T) {
	cases := map[string]string{
		"Viator":  ChannelViator,
		"Bokun":   ChannelViator,
		"Website": ChannelWebsite,
		"GYG":     ChannelWebsite,
		"OTA":     ChannelWebsite,
		"":        ChannelWebsite,
		"Klook":   ChannelWebsite,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ClassifyChannel(raw), "channel %q", raw)
	}
}

func TestClassifyChannelIsIdempotent(t *testing.T) {
	for _, raw := range []string{"Viator", "Bokun", "Website", "GYG", "OTA", "walk-in"} {
		once := ClassifyChannel(raw)
		assert.Equal(t, once, ClassifyChannel(once))
		assert.Contains(t, CanonicalChannels, once)
	}
}
