package game

import (
	"github.com/pthm-cable/neonring/camera"
	"github.com/pthm-cable/neonring/components"
	"github.com/pthm-cable/neonring/config"
)

// vehicleConfig builds the handling constants from the loaded config.
func vehicleConfig(cfg *config.Config) components.VehicleConfig {
	return components.VehicleConfig{
		MaxSpeed:     cfg.Derived.MaxSpeed,
		Acceleration: cfg.Vehicle.Acceleration,
		Braking:      cfg.Vehicle.Braking,
		TurnSpeed:    cfg.Vehicle.TurnSpeed,
	}
}

// trackFromConfig builds the annulus from the loaded config.
func trackFromConfig(cfg *config.Config) components.Track {
	return components.Track{
		InnerRadius: cfg.Track.InnerRadius,
		OuterRadius: cfg.Track.OuterRadius,
	}
}

// chaseCamera builds the chase camera from the loaded config.
func chaseCamera(cfg *config.Config) camera.Chase {
	return camera.New(cfg.Camera.Distance, cfg.Camera.Height, cfg.Camera.Smoothing, cfg.Camera.LookLift)
}
