package main

import (
	"github.com/chenBenjamin97/footscout/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	v          = config.New()
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "footscout",
	Short:         "Football player performance analysis",
	Long:          "Analyze a football clip: follow one player, measure distance and speed, and count passes, dribbles and shots.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load(".env") //optional, real environment wins

		loaded, err := config.Load(v, configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().String("model", "", "path to the YOLOv8 ONNX model")
	if err := v.BindPFlag("model.path", rootCmd.PersistentFlags().Lookup("model")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
}

//bindFlag ties a command flag to a config key, the flag wins only when set
func bindFlag(key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}
