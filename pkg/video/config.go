package video

import (
	"fmt"
	"path"

	"github.com/chenBenjamin97/player-tracker/pkg/cache"
	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"github.com/chenBenjamin97/player-tracker/pkg/utils"
	"github.com/spf13/viper"
)

//sqliteCacheName is the database file used by the 'sqlite' cache backend inside 'directory.cache'
const sqliteCacheName = "detections.db"

//StartConfiguredTracker starts the tracking script set under 'tracker' in the configuration file
func StartConfiguredTracker() (*ProcessTracker, error) {
	args := []string{viper.GetString("tracker.script")}
	if model := viper.GetString("tracker.model"); model != "" {
		args = append(args, "--model", model)
	}

	return StartTracker(viper.GetString("tracker.command"), args...)
}

//OpenConfiguredStore returns the detection cache location of videoName for the 'cache.backend' in use.
//The returned func releases the store and must always be called.
func OpenConfiguredStore(videoName string) (cache.Store, func(), error) {
	switch backend := viper.GetString("cache.backend"); backend {
	case "", "file":
		return cache.NewFileStore(utils.CachePath(viper.GetString("directory.cache"), videoName)), func() {}, nil
	case "sqlite":
		db, err := cache.OpenDB(path.Join(viper.GetString("directory.cache"), sqliteCacheName))
		if err != nil {
			return nil, nil, fmt.Errorf("OpenConfiguredStore: %w", err)
		}
		return db.Store(path.Base(videoName)), func() { db.Close() }, nil
	case "none":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("OpenConfiguredStore: unknown cache backend '%s'", backend)
	}
}

//ConfiguredOptions fills run options from the configuration file. Tracker and Store are left to the caller.
func ConfiguredOptions(outputPath string) (Options, error) {
	policy, err := tracking.ParsePolicy(viper.GetString("tracking.assignment"))
	if err != nil {
		return Options{}, err
	}

	return Options{
		Reuse:           viper.GetBool("cache.reuse"),
		RecomputeOnMiss: viper.GetBool("cache.recompute_on_miss"),
		Policy:          policy,
		OutputPath:      outputPath,
		TempDir:         viper.GetString("directory.temp"),
	}, nil
}
