package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/chenBenjamin97/player-tracker/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "player-tracker",
	Short: "Assign stable player identities to tracked detections",
	Long: "Runs a detection/tracking model over a fixed-camera match video, decides once which track is " +
		"player 1 and which is player 2, and relabels and renders the whole clip.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

//Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml")

	viper.SetDefault("http.port", "5000")
	viper.SetDefault("http.max_upload_size", utils.MaxUploadSize)
	viper.SetDefault("video.prod_format", "mp4")
	viper.SetDefault("video.allowed_extensions", utils.AllowedVideoExtensions)
	viper.SetDefault("players.default_height_1", utils.DefaultPlayerOneHeight)
	viper.SetDefault("players.default_height_2", utils.DefaultPlayerTwoHeight)
	viper.SetDefault("tracker.command", "python3")
	viper.SetDefault("tracking.assignment", "matching")
	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("directory.root", "./data")
	viper.SetDefault("directory.source", "./data/input_videos")
	viper.SetDefault("directory.ready", "./data/output_videos")
	viper.SetDefault("directory.temp", "./data/tmp")
	viper.SetDefault("directory.cache", "./data/tracker_stubs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(processCmd)
}

//loadConfig reads config.yaml and creates the data directories it names
func loadConfig(cmd *cobra.Command, args []string) error {
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("Error: Could not read config file, got '%v'", err)
		}
		log.Printf("loadConfig: no config file under '%s', using defaults", configPath)
	}

	//create missing directories from config file
	for _, dir := range viper.GetStringMapString("directory") {
		if err := os.MkdirAll(dir, 0766); err != nil {
			log.Printf("Error Creating '%s' directory, got '%v'", dir, err)
		}
	}

	if viper.GetString("video.prod_format") == "" || viper.GetString("tracker.script") == "" {
		return fmt.Errorf("Error: Missing critical configurations")
	}

	return nil
}
