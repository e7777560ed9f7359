package signal

import (
	"math"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
)

// LinkGainDB is the transmit power plus antenna gains minus cable loss
func LinkGainDB(ch model.ChannelParameters) float64 {
	return ch.TxPowerDBm + ch.TxGainDB + ch.RxGainDB - ch.CableLossDB
}

// MedianSNR returns the SNR at distanceKm without shadowing or fading
func MedianSNR(distanceKm float64, env model.Environment, ch model.ChannelParameters) (float64, error) {
	pathLoss, err := GetPathLoss(distanceKm, env, ch)
	if err != nil {
		return 0, err
	}
	return LinkGainDB(ch) - pathLoss - NoiseFloorDBm(ch.BandwidthHz, ch.NoiseFigureDB), nil
}

// SampleSNR draws trials SNR realisations in dB at distanceKm.
// All shadowing samples are drawn from src before the fading samples.
func SampleSNR(distanceKm float64, env model.Environment, trials int, ch model.ChannelParameters, src rand.Source) ([]float64, error) {
	if trials < 1 {
		return nil, errors.NewInvalid("trial count must be positive, got %d", trials)
	}
	if !(ch.BandwidthHz > 0) {
		return nil, errors.NewInvalid("bandwidth must be positive, got %v Hz", ch.BandwidthHz)
	}
	pathLoss, err := GetPathLoss(distanceKm, env, ch)
	if err != nil {
		return nil, err
	}

	params := env.Params()
	shadow := ShadowingDb(params.ShadowingSigmaDB, trials, src)
	fading := GammaFadingDb(params.FadingShape, trials, src)

	noise := NoiseFloorDBm(ch.BandwidthHz, ch.NoiseFigureDB)
	gain := LinkGainDB(ch)

	snr := make([]float64, trials)
	for i := range snr {
		receivedPower := gain - pathLoss + shadow[i] + fading[i]
		snr[i] = receivedPower - noise
	}
	return snr, nil
}

// PacketErrorRate is the logistic PER model around the SNR threshold with smoothing k
func PacketErrorRate(snrDB, thresholdDB, k float64) float64 {
	return 1 / (1 + math.Exp(-(snrDB-thresholdDB)/k))
}

// PacketSuccessRate averages 1 - PER over the SNR samples
func PacketSuccessRate(snrs []float64, thresholdDB, k float64) float64 {
	psr := make([]float64, len(snrs))
	for i, snr := range snrs {
		psr[i] = 1 - PacketErrorRate(snr, thresholdDB, k)
	}
	return stat.Mean(psr, nil)
}

// SimulatePSR estimates the packet success rate of one sweep point from a fresh generator seeded with seed
func SimulatePSR(run model.DistanceSweepRun, ch model.ChannelParameters, seed uint64) (float64, error) {
	if err := run.Validate(); err != nil {
		return 0, err
	}
	if !(ch.PERSmoothing > 0) {
		return 0, errors.NewInvalid("PER smoothing constant must be positive, got %v", ch.PERSmoothing)
	}

	snrs, err := SampleSNR(run.DistanceKm, run.Environment, run.Trials, ch, rand.NewSource(seed))
	if err != nil {
		return 0, err
	}
	psr := PacketSuccessRate(snrs, ch.SNRThresholdDB, ch.PERSmoothing)
	log.Debugf("env: %v d: %.3f km trials: %d psr: %.4f", run.Environment, run.DistanceKm, run.Trials, psr)
	return psr, nil
}
