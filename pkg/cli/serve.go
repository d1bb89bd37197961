package cli

import (
	"github.com/chenBenjamin97/player-tracker/pkg/api"
	"github.com/chenBenjamin97/player-tracker/pkg/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the video upload API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := api.SetRouter(metrics.New())
		return r.Run(":" + viper.GetString("http.port"))
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port (overrides http.port)")
	viper.BindPFlag("http.port", serveCmd.Flags().Lookup("port"))
}
