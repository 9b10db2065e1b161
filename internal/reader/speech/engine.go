package speech

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/viper"
)

type EngineType string

const (
	EngineTypeMock   EngineType = "mock"
	EngineTypeESpeak EngineType = "espeak"
	EngineTypeSay    EngineType = "say"    // macOS only
	EngineTypeSAPI   EngineType = "sapi"   // Windows only
	EngineTypeGoogle EngineType = "google" // Google Cloud TTS
	EngineTypeAuto   EngineType = "auto"
)

func (e EngineType) String() string {
	return string(e)
}

// ErrUnavailable reports that no usable speech engine exists in this
// environment. Callers must treat it as terminal and disable playback.
var ErrUnavailable = errors.New("no speech engine available on this system")

type Config struct {
	Type     string
	CacheDir string // audio cache for synthesizing engines
}

// New creates a speech engine for the given config, resolving "auto" to the
// best engine for the current platform.
func New(config Config) (Engine, error) {
	if config.Type == "" || config.Type == EngineTypeAuto.String() {
		best, err := bestEngineForPlatform()
		if err != nil {
			return nil, err
		}
		config.Type = best.String()
	}

	switch config.Type {
	case EngineTypeMock.String():
		return NewMockEngine(), nil

	case EngineTypeGoogle.String():
		cacheDir := config.CacheDir
		if cacheDir == "" {
			cacheDir = viper.GetString("tts.cache_path")
		}
		return newGoogleEngine(cacheDir)

	case EngineTypeESpeak.String():
		return newESpeakEngine()

	case EngineTypeSay.String():
		if runtime.GOOS != "darwin" {
			return nil, fmt.Errorf("say engine only supports macOS")
		}
		return newSayEngine()

	case EngineTypeSAPI.String():
		if runtime.GOOS != "windows" {
			return nil, fmt.Errorf("SAPI engine only supports Windows")
		}
		return newSAPIEngine()

	default:
		return nil, fmt.Errorf("unsupported speech engine type: %s", config.Type)
	}
}

func bestEngineForPlatform() (EngineType, error) {
	if hasGoogleCredentials() {
		return EngineTypeGoogle, nil
	}

	switch runtime.GOOS {
	case "darwin":
		return EngineTypeSay, nil
	case "windows":
		return EngineTypeSAPI, nil
	default:
		if _, err := findESpeakExecutable(); err == nil {
			return EngineTypeESpeak, nil
		}
	}

	return "", ErrUnavailable
}

// AvailableEngines returns the engine types usable on the current platform.
func AvailableEngines() []EngineType {
	engines := []EngineType{EngineTypeMock}

	if _, err := findESpeakExecutable(); err == nil {
		engines = append(engines, EngineTypeESpeak)
	}
	if hasGoogleCredentials() {
		engines = append(engines, EngineTypeGoogle)
	}

	switch runtime.GOOS {
	case "darwin":
		engines = append(engines, EngineTypeSay)
	case "windows":
		engines = append(engines, EngineTypeSAPI)
	}

	return engines
}

func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
