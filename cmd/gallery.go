package cmd

import (
	"context"

	"pairvote/internal/config"
	"pairvote/internal/console"
	"pairvote/internal/gallery"
	"pairvote/internal/services"

	"github.com/spf13/cobra"
)

func newGalleryCommand(flags *globalFlags) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "List every submitted image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if source != "" {
				cfg.Gallery.Source = source
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			src, err := gallerySource(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			grid := console.NewGrid(cmd.OutOrStdout())
			if err := gallery.NewLoader(src, grid, grid).Load(cmd.Context()); err != nil {
				return err
			}
			return grid.Flush()
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Gallery source: http or s3 (overrides gallery.source)")

	return cmd
}

func gallerySource(ctx context.Context, cfg *config.Config) (gallery.Source, error) {
	if cfg.Gallery.Source == config.GallerySourceS3 {
		source, err := services.NewS3GallerySource(ctx, cfg.Gallery.S3)
		if err != nil {
			return nil, err
		}
		return source, nil
	}

	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return services.NewGalleryService(client), nil
}
