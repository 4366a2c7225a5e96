package cmd

import (
	"pairvote/internal/services"
	"pairvote/internal/session"
	"pairvote/internal/voting"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newVoteCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "vote",
		Short: "Vote for the better of two images, pair after pair",
		Long: "Shows two images from the voting site and submits the one you pick.\n" +
			"Type 1 or 2 (or the image name) to vote and q to quit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			log.Info().
				Str("base_url", cfg.Server.BaseURL).
				Int("time_limit", cfg.Voting.TimeLimit).
				Msg("Starting voting session")

			s := session.New(
				services.NewPageService(client),
				services.NewVoteService(client),
				cmd.OutOrStdout(),
				voting.Options{
					TimeLimit:    cfg.Voting.TimeLimit,
					ArcLength:    cfg.Voting.ArcLength,
					TickInterval: cfg.Voting.TickInterval,
				},
			)
			if err := s.Run(cmd.Context(), cmd.InOrStdin()); err != nil {
				return err
			}

			log.Info().Msg("Voting session ended")
			return nil
		},
	}
}
