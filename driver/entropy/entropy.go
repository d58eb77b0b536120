// Package entropy provides one-shot boot entropy for seeding the
// learner's PRNG, read once at startup from a floating ADC channel.
package entropy

import (
	"fmt"

	"phototaxis.dev/driver/ldr"
)

// channel is the extra ADC input reserved for the entropy reading; it
// shares the same SPI bus as the two light sensors.
const channel = 2

// maxCode is the full-scale 10-bit ADC reading.
const maxCode = 1023

// Read16 performs one conversion on the entropy channel and widens the
// 10-bit code to a 16-bit seed by scaling into the full uint16 range.
func Read16(bus *ldr.Bus) (uint16, error) {
	code, err := bus.ReadRaw(channel)
	if err != nil {
		return 0, fmt.Errorf("entropy: %w", err)
	}
	return uint16(code * 0xFFFF / maxCode), nil
}
