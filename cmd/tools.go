package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"text/tabwriter"

	"github.com/rviscarra/snapcompose/internal/encoding"
	"github.com/rviscarra/snapcompose/internal/imaging"
	"github.com/rviscarra/snapcompose/internal/rdisplay"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	captureRegion rdisplay.Region
	outputPath    string
	outputFormat  string
	composeLayout string
	maxWidth      uint
	maxHeight     uint
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a region of the primary display to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		enc, err := newEncoder(cfg, outputFormat)
		if err != nil {
			return err
		}
		img, err := rdisplay.NewScreenService(logger).CaptureRegion(captureRegion)
		if err != nil {
			return fmt.Errorf("failed to capture region: %w", err)
		}
		return writeImage(logger, enc, img, outputPath)
	},
}

var composeCmd = &cobra.Command{
	Use:   "compose image [image...]",
	Short: "Lay out image files on a single canvas",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		enc, err := newEncoder(cfg, outputFormat)
		if err != nil {
			return err
		}
		images := make([]image.Image, 0, len(args))
		for _, path := range args {
			img, err := readImage(path)
			if err != nil {
				return err
			}
			images = append(images, img)
		}

		composite, err := imaging.ComposeNamed(images, composeLayout)
		if err != nil {
			return fmt.Errorf("image composition failed: %w", err)
		}
		if composite, err = imaging.Bound(composite, maxWidth, maxHeight); err != nil {
			return err
		}
		return writeImage(logger, enc, composite, outputPath)
	},
}

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List attached displays",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		monitors, err := rdisplay.NewScreenService(logger).Monitors()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tWIDTH\tHEIGHT\tX\tY\tPRIMARY")
		for _, m := range monitors {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%t\n", m.Name, m.Width, m.Height, m.X, m.Y, m.Primary)
		}
		return tw.Flush()
	},
}

// readImage loads an encoded image file, or a file holding a base64 data URL
func readImage(path string) (image.Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var img image.Image
	if bytes.HasPrefix(raw, []byte("data:")) {
		img, err = encoding.DecodeDataURL(string(bytes.TrimSpace(raw)))
	} else {
		img, _, err = image.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writeImage(logger *zap.Logger, enc encoding.Encoder, img image.Image, path string) error {
	payload, err := enc.Encode(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return err
	}
	logger.Info("Wrote image",
		zap.String("path", path),
		zap.String("type", enc.MimeType()),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return nil
}

func init() {
	captureCmd.Flags().Int32Var(&captureRegion.X, "x", 0, "Region left edge")
	captureCmd.Flags().Int32Var(&captureRegion.Y, "y", 0, "Region top edge")
	captureCmd.Flags().Uint32Var(&captureRegion.Width, "width", 0, "Region width")
	captureCmd.Flags().Uint32Var(&captureRegion.Height, "height", 0, "Region height")
	captureCmd.MarkFlagRequired("width")
	captureCmd.MarkFlagRequired("height")

	composeCmd.Flags().StringVarP(&composeLayout, "layout", "l", imaging.Horizontal.String(), "Layout: "+imaging.LayoutNames())
	composeCmd.Flags().UintVar(&maxWidth, "max-width", 0, "Scale the result down to this width")
	composeCmd.Flags().UintVar(&maxHeight, "max-height", 0, "Scale the result down to this height")

	for _, c := range []*cobra.Command{captureCmd, composeCmd} {
		c.Flags().StringVarP(&outputPath, "out", "o", "", "Output file")
		c.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: png, jpeg or pdf (defaults to output_format)")
		c.MarkFlagRequired("out")
	}

	rootCmd.AddCommand(captureCmd, composeCmd, monitorsCmd)
}
