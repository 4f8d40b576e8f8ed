package main

import (
	"errors"
	"io/fs"
	"log"
	_ "time/tzdata"

	"github.com/dushixiang/pipvault/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "pipvault",
	Short: "PipVault - trading journal and performance analytics",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return internal.Run(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "optional dotenv file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
