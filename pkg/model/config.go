// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Default returns the India 866 MHz, SF7, 14 dBm parameter set of the study
func Default() Model {
	return Model{
		Radio: RadioParameters{
			PayloadBytes:    40,
			SpreadingFactor: 7,
			BandwidthHz:     125e3,
			CodingRate:      1,
			PreambleSymbols: 8,
		},
		Latency: LatencyBudgetParameters{
			MacJitterMaxS:  0.03,
			SerialDelayS:   0.003,
			BackendMedianS: 0.006,
			BackendSigma:   0.25,
			UIBaseS:        0.004,
			UIPerUAVSlopeS: 0.00005,
			UIJitterStdS:   0.001,
		},
		Channel: ChannelParameters{
			CarrierFreqMHz:     866.0,
			BaseStationHeightM: 30.0,
			MobileHeightM:      2.0,
			TxPowerDBm:         14.0,
			TxGainDB:           2.0,
			RxGainDB:           2.0,
			CableLossDB:        0.5,
			BandwidthHz:        125e3,
			NoiseFigureDB:      6.0,
			SNRThresholdDB:     -7.5,
			PERSmoothing:       1.2,
		},
		Seeds: Seeds{Latency: 1, PSR: 0},
		Fleet: FleetScenario{
			UAVCounts:    []int{1, 10, 50},
			DurationS:    180,
			SampleRateHz: 1.0,
		},
		Sweep: SweepScenario{
			MinDistanceKm: 0.2,
			MaxDistanceKm: 15,
			Points:        40,
			Trials:        2000,
			Environments:  []string{"rural", "suburban", "urban"},
		},
		Formative: FormativeScenario{
			Tasks: []FormativeTask{
				{Column: "T1_time", Label: "Alert Triage"},
				{Column: "T2_time", Label: "Geofence Breach"},
				{Column: "T3_time", Label: "Track & Predict"},
			},
			SuccessValue: "Y",
		},
		Outputs: Outputs{
			LatencyTable:     "IN_Latency_Budget_Table_SF7_TX14.csv",
			LatencyPlot:      "IN_Latency_CCDF_SF7_TX14.pdf",
			PSRTable:         "IN_LoRa_PSR_vs_Distance_SF7_TX14.csv",
			PSRPlot:          "IN_LoRa_PSR_vs_Distance_SF7_TX14.pdf",
			RangeTable:       "IN_LoRa_Median_Range_SF7_TX14.csv",
			FormativeTable:   "Formative_Summary.csv",
			FormativeBoxplot: "task_time_boxplot.png",
			Workbook:         "IN_Telemetry_Results.xlsx",
		},
	}
}

// LoadConfig overlays the parameter file at location onto model.
// Keys missing from the file keep their current values.
func LoadConfig(model *Model, location string) error {
	v := viper.New()
	ext := filepath.Ext(location)
	if ext == "" {
		v.SetConfigName(filepath.Base(location))
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Dir(location))
	} else {
		v.SetConfigFile(location)
		v.SetConfigType(strings.TrimPrefix(ext, "."))
	}

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	log.Infof("Loaded parameters from %s", v.ConfigFileUsed())

	// lists in the file replace the defaults instead of being merged element-wise
	return v.Unmarshal(model, func(c *mapstructure.DecoderConfig) {
		c.ZeroFields = true
	})
}

// LoadConfigFromBytes overlays a YAML document onto model
func LoadConfigFromBytes(model *Model, data []byte) error {
	return yaml.Unmarshal(data, model)
}
