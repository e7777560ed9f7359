package signal

import (
	"math"

	"github.com/nfvri/lora-telemetry-sim/pkg/model"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// GetPathLoss calculates the path loss of a link based on the environment
func GetPathLoss(distanceKm float64, env model.Environment, ch model.ChannelParameters) (float64, error) {
	if err := env.Validate(); err != nil {
		return 0, err
	}
	pathLoss, err := Cost231HataSuburban(distanceKm, ch.CarrierFreqMHz, ch.BaseStationHeightM, ch.MobileHeightM)
	if err != nil {
		return 0, err
	}

	return pathLoss + env.Params().PathLossOffsetDB, nil
}

// Cost231HataSuburban calculates the COST-231 Hata path loss with the suburban correction
func Cost231HataSuburban(distanceKm, freqMHz, hbM, hmM float64) (float64, error) {
	if !(distanceKm > 0) {
		return 0, errors.NewInvalid("distance must be positive, got %v km", distanceKm)
	}
	if !(freqMHz > 0) {
		return 0, errors.NewInvalid("carrier frequency must be positive, got %v MHz", freqMHz)
	}
	if !(hbM > 0) {
		return 0, errors.NewInvalid("base station height must be positive, got %v m", hbM)
	}

	logF := math.Log10(freqMHz)
	logHb := math.Log10(hbM)

	// mobile antenna height correction
	a := (1.1*logF-0.7)*hmM - (1.56*logF - 0.8)
	urban := 46.3 + 33.9*logF - 13.82*logHb - a + (44.9-6.55*logHb)*math.Log10(distanceKm)
	suburban := urban - 2*math.Pow(math.Log10(freqMHz/28), 2) - 5.4

	log.Debugf("\nd: %v km \na(hm): %v \nLurban: %v \nLsuburban: %v", distanceKm, a, urban, suburban)
	return suburban, nil
}
