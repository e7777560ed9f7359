package signal

import (
	"testing"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
)

func studyRadio() model.RadioParameters {
	return model.Default().Radio
}

func TestAirtimeSF7(t *testing.T) {
	toa, err := Airtime(studyRadio())
	require.NoError(t, err)

	// Ts = 128/125000 s, 12.25 preamble symbols and 68 payload symbols
	ts := 128.0 / 125000.0
	assert.InDelta(t, 12.25*ts+68*ts, toa, 1e-12)
	assert.InDelta(t, 0.082176, toa, 1e-9)
}

func TestPayloadSymbols(t *testing.T) {
	assert.Equal(t, 68.0, PayloadSymbols(40, 7, 1))
	// negative bit count clamps to the 8 sync symbols
	assert.Equal(t, 8.0, PayloadSymbols(0, 12, 1))
	assert.Equal(t, 8.0+2*8, PayloadSymbols(10, 12, 4))
}

func TestAirtimeMonotonicInPayload(t *testing.T) {
	for _, sf := range []int{6, 7, 9, 12} {
		radio := studyRadio()
		radio.SpreadingFactor = sf
		prev := 0.0
		for payload := 1; payload <= 255; payload++ {
			toa, err := AirtimeFor(payload, radio)
			require.NoError(t, err)
			assert.Greater(t, toa, 0.0)
			assert.GreaterOrEqual(t, toa, prev, "sf %d payload %d", sf, payload)
			prev = toa
		}
	}
}

func TestAirtimeGrowsWithSpreadingFactor(t *testing.T) {
	radio := studyRadio()
	prev := 0.0
	for sf := 6; sf <= 12; sf++ {
		radio.SpreadingFactor = sf
		toa, err := Airtime(radio)
		require.NoError(t, err)
		assert.Greater(t, toa, prev)
		prev = toa
	}
}

func TestAirtimeInvalid(t *testing.T) {
	radio := studyRadio()
	radio.BandwidthHz = 0
	_, err := Airtime(radio)
	assert.True(t, errors.IsInvalid(err))

	radio = studyRadio()
	radio.SpreadingFactor = 0
	_, err = Airtime(radio)
	assert.True(t, errors.IsInvalid(err))

	_, err = AirtimeFor(-1, studyRadio())
	assert.True(t, errors.IsInvalid(err))
}
