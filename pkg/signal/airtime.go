package signal

import (
	"math"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
)

// explicit header with CRC, low data rate optimisation off
const (
	headerSymbols = 4.25
	crcBits       = 16
	headerBits    = 20
	syncSymbols   = 8
)

// SymbolDuration returns the LoRa symbol time 2^SF/BW in seconds
func SymbolDuration(sf int, bandwidthHz float64) float64 {
	return math.Exp2(float64(sf)) / bandwidthHz
}

// PayloadSymbols returns the number of payload symbols of a packet
func PayloadSymbols(payloadBytes, sf, codingRate int) float64 {
	bits := float64(8*payloadBytes - 4*sf + 28 + crcBits - headerBits)
	n := math.Ceil(bits/float64(4*sf)) * float64(codingRate+4)
	return syncSymbols + math.Max(n, 0)
}

// Airtime returns the on-air duration of one packet in seconds
func Airtime(radio model.RadioParameters) (float64, error) {
	if err := radio.Validate(); err != nil {
		return 0, err
	}
	ts := SymbolDuration(radio.SpreadingFactor, radio.BandwidthHz)
	preamble := (float64(radio.PreambleSymbols) + headerSymbols) * ts
	return preamble + PayloadSymbols(radio.PayloadBytes, radio.SpreadingFactor, radio.CodingRate)*ts, nil
}

// AirtimeFor is Airtime with the payload size overridden
func AirtimeFor(payloadBytes int, radio model.RadioParameters) (float64, error) {
	radio.PayloadBytes = payloadBytes
	return Airtime(radio)
}
