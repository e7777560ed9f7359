package model

import (
	"strings"

	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// Environment is the propagation environment of a link
type Environment int

const (
	Rural Environment = iota
	Suburban
	Urban
)

// EnvironmentParams are the per-environment channel corrections
type EnvironmentParams struct {
	// PathLossOffsetDB is added to the suburban COST-231 Hata loss
	PathLossOffsetDB float64
	// ShadowingSigmaDB is the standard deviation of log-normal shadowing
	ShadowingSigmaDB float64
	// FadingShape is the Gamma shape (Nakagami m) of the fading power
	FadingShape float64
}

var environmentParams = [...]EnvironmentParams{
	Rural:    {PathLossOffsetDB: -3.0, ShadowingSigmaDB: 4.0, FadingShape: 2.5},
	Suburban: {PathLossOffsetDB: 0.0, ShadowingSigmaDB: 6.0, FadingShape: 1.8},
	Urban:    {PathLossOffsetDB: 6.0, ShadowingSigmaDB: 8.0, FadingShape: 1.3},
}

var environmentNames = [...]string{
	Rural:    "rural",
	Suburban: "suburban",
	Urban:    "urban",
}

// AllEnvironments lists every environment in sweep order
func AllEnvironments() []Environment {
	return []Environment{Rural, Suburban, Urban}
}

// Params returns the channel corrections of the environment
func (e Environment) Params() EnvironmentParams {
	return environmentParams[e]
}

func (e Environment) String() string {
	if e.Validate() != nil {
		return "unknown"
	}
	return environmentNames[e]
}

// Title is the display name used in plot legends
func (e Environment) Title() string {
	s := e.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Validate rejects values outside the enum
func (e Environment) Validate() error {
	if e < Rural || e > Urban {
		return errors.NewInvalid("unknown environment %d", int(e))
	}
	return nil
}

// ParseEnvironment maps a configuration name onto an Environment
func ParseEnvironment(name string) (Environment, error) {
	for i, n := range environmentNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Environment(i), nil
		}
	}
	return 0, errors.NewInvalid("unknown environment %q", name)
}
