package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/Chative-Learning-Agents/pkg/config"
	logx "github.com/tanpawarit/Chative-Learning-Agents/pkg/logger"
	_ "github.com/tanpawarit/Chative-Learning-Agents/pkg/logger/autoload"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "learning-agents",
		Short:         "Learning assistant agents: tutor and course recommender",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configx.SetEnvFile(envFile)
			logCfg, err := configx.New[logx.Config]("LOG")
			if err != nil {
				return err
			}
			logx.Init(*logCfg)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file")

	cmd.AddCommand(
		newServeCmd(),
		newAskCmd(),
		newAgentsCmd(),
		newSeedCmd(),
		newHistoryCmd(),
	)
	return cmd
}
