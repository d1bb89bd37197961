package cli

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"github.com/chenBenjamin97/player-tracker/pkg/video"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	keypointsArg string
	outputArg    string
	noRender     bool
)

var processCmd = &cobra.Command{
	Use:   "process <video>",
	Short: "Track the two players of a video and render the overlay",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVar(&keypointsArg, "keypoints", "", "28 comma-separated court keypoint coordinates (x0,y0,...,x13,y13)")
	processCmd.Flags().StringVar(&outputArg, "output", "", "rendered video path (default: directory.ready/<video>.<video.prod_format>)")
	processCmd.Flags().BoolVar(&noRender, "no-render", false, "skip drawing and writing the output video")
	processCmd.Flags().Bool("reuse", false, "reuse cached detections (overrides cache.reuse)")
	processCmd.Flags().Bool("recompute-on-miss", false, "run the tracker when the cache is missing or stale")
	processCmd.Flags().String("policy", "", "role assignment policy: greedy, strict or matching")
	processCmd.Flags().String("cache-backend", "", "detection cache backend: file, sqlite or none")
	processCmd.MarkFlagRequired("keypoints")

	viper.BindPFlag("cache.reuse", processCmd.Flags().Lookup("reuse"))
	viper.BindPFlag("cache.recompute_on_miss", processCmd.Flags().Lookup("recompute-on-miss"))
	viper.BindPFlag("tracking.assignment", processCmd.Flags().Lookup("policy"))
	viper.BindPFlag("cache.backend", processCmd.Flags().Lookup("cache-backend"))
}

func runProcess(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	kps, err := tracking.ParseCourtKeypoints(keypointsArg)
	if err != nil {
		return fmt.Errorf("parse keypoints: %w", err)
	}

	outputPath := outputArg
	if outputPath == "" && !noRender {
		base := path.Base(videoPath)
		outputPath = path.Join(viper.GetString("directory.ready"), base[:len(base)-len(path.Ext(base))]+"."+viper.GetString("video.prod_format"))
	}
	if noRender {
		outputPath = ""
	}

	opts, err := video.ConfiguredOptions(outputPath)
	if err != nil {
		return err
	}

	store, release, err := video.OpenConfiguredStore(videoPath)
	if err != nil {
		return err
	}
	defer release()
	opts.Store = store

	if !opts.Reuse || opts.RecomputeOnMiss || store == nil {
		tracker, err := video.StartConfiguredTracker()
		if err != nil {
			return err
		}
		defer func() {
			if err := tracker.Close(); err != nil {
				log.Printf("runProcess: %v", err)
			}
		}()
		opts.Tracker = tracker
	}

	res, err := video.Process(videoPath, kps, opts)
	if err != nil {
		return err
	}

	PrintRoleTable(os.Stdout, res.Distances, res.Mapping)
	fmt.Fprintf(os.Stdout, "%d frames relabeled (cached detections: %v)\n", len(res.Detections), res.FromCache)
	if res.OutputPath != "" {
		fmt.Fprintf(os.Stdout, "Rendered video written to %s\n", res.OutputPath)
	}

	return nil
}
