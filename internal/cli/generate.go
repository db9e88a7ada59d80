package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/manifestgen/internal/app"
	"github.com/GriffinCanCode/manifestgen/internal/domain/generator"
	"github.com/GriffinCanCode/manifestgen/internal/providers/archive"
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
)

// GenerateOptions drives one non-interactive generator run
type GenerateOptions struct {
	URL      string
	Icons    []string
	Uploads  []string
	Missing  string
	OutDir   string
	Headless bool
}

var genOpts GenerateOptions

var generateCmd = &cobra.Command{
	Use:   "generate <url>",
	Short: "Fetch a manifest for a site and write manifest.json and assets.zip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		opts := genOpts
		opts.URL = args[0]
		if opts.Headless {
			cfg.Image.Headless = true
		}

		a, err := app.New(cfg, logger)
		if err != nil {
			return err
		}
		return RunGenerate(cmd.Context(), a, opts)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringSliceVar(&genOpts.Icons, "icon", nil, "add an icon by URL (repeatable)")
	f.StringSliceVar(&genOpts.Uploads, "upload", nil, "add an icon from a local file (repeatable)")
	f.StringVar(&genOpts.Missing, "missing", "", "source image for generating missing icon sizes")
	f.StringVarP(&genOpts.OutDir, "out", "o", ".", "output directory")
	f.BoolVar(&genOpts.Headless, "headless", false, "skip image measurement")
}

// RunGenerate replays the interactive flow against a wired session and
// writes the resulting manifest and asset archive into opts.OutDir.
func RunGenerate(ctx context.Context, a *app.App, opts GenerateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	gen := a.Generator
	logger := a.Logger.Named("generate")

	gen.UpdateLink(opts.URL)
	if state := gen.State(); state.Error != nil {
		return errors.New(*state.Error)
	}
	if err := gen.GetManifestInformation(ctx); err != nil {
		return fmt.Errorf("fetch manifest: %s", generator.ErrorMessage(err))
	}
	if state := gen.State(); state.Manifest == nil {
		return errors.New(generator.MsgEmptyURL)
	}

	for _, src := range opts.Icons {
		if err := gen.AddIconFromURL(ctx, src); err != nil {
			return fmt.Errorf("add icon %s: %w", src, err)
		}
	}
	for _, path := range opts.Uploads {
		if err := gen.UploadIcon(ctx, types.NewLocalFile(path)); err != nil {
			return fmt.Errorf("upload icon %s: %w", path, err)
		}
	}
	if opts.Missing != "" {
		if err := gen.GenerateMissingImages(ctx, types.NewLocalFile(opts.Missing)); err != nil {
			return fmt.Errorf("generate missing images: %s", generator.ErrorMessage(err))
		}
	}

	state := gen.State()
	for _, w := range state.Warnings {
		logger.Warn("manifest warning", zap.String("warning", w))
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}

	manifestPath := filepath.Join(opts.OutDir, archive.ManifestFile)
	data, err := sonic.ConfigStd.MarshalIndent(state.ManifestContent(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return err
	}

	zipPath := filepath.Join(opts.OutDir, "assets.zip")
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	if err := archive.Write(out, state); err != nil {
		_ = out.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Info("manifest written",
		zap.String("manifest", manifestPath),
		zap.String("archive", zipPath),
		zap.Int("icons", len(state.Icons)),
		zap.Int("assets", len(state.Assets)),
	)
	return nil
}
