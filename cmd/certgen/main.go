// Command certgen renders a batch of certificates from a spreadsheet, a
// template image and a field layout, and bundles them into a zip archive.
//
//	certgen --sheet data.csv --template cert.png --layout layout.json \
//	        --format pdf --output certificates.zip
//
// The sheet may be a local .csv or .xlsx file, a plain CSV URL, or a Google
// Sheets share link. The layout is the JSON document produced by the
// mapping step; see the layout package for its schema.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/spf13/cobra"

	"github.com/lvillar/certgen"
	"github.com/lvillar/certgen/batch"
	"github.com/lvillar/certgen/layout"
	"github.com/lvillar/certgen/render"
	"github.com/lvillar/certgen/sheet"
)

var (
	sheetRef     string
	templatePath string
	layoutPath   string
	formatName   string
	outputPath   string
	jpegQuality  int
	fontFlags    []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "certgen",
		Short: "Generate certificates from spreadsheet data and a template image",
		Long: `certgen renders one certificate per spreadsheet row by compositing row
values onto a template image at the positions recorded in a layout file,
then bundles the results into a zip archive.`,
		Args:         cobra.NoArgs,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&sheetRef, "sheet", "", "Dataset source: .csv/.xlsx file, CSV URL, or Google Sheets link")
	rootCmd.Flags().StringVar(&templatePath, "template", "", "Template image (PNG or JPEG)")
	rootCmd.Flags().StringVar(&layoutPath, "layout", "", "Field layout JSON file")
	rootCmd.Flags().StringVar(&formatName, "format", "pdf", "Output format: png, jpg or pdf")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "certificates.zip", "Output archive path")
	rootCmd.Flags().IntVar(&jpegQuality, "jpeg-quality", 95, "JPEG quality (1-100), jpg format only")
	rootCmd.Flags().StringArrayVar(&fontFlags, "font", nil, "Extra font as family=path.ttf (repeatable)")
	for _, f := range []string{"sheet", "template", "layout"} {
		_ = rootCmd.MarkFlagRequired(f)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "certgen: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	format, err := certgen.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ds, err := loadDataset(ctx, sheetRef)
	if err != nil {
		return err
	}

	tf, err := os.Open(templatePath)
	if err != nil {
		return fmt.Errorf("opening template: %w", err)
	}
	tpl, err := certgen.DecodeTemplate(tf)
	tf.Close()
	if err != nil {
		return err
	}

	placements, err := loadPlacements(layoutPath, ds)
	if err != nil {
		return err
	}

	opts := []render.Option{render.WithJPEGQuality(jpegQuality)}
	for _, f := range fontFlags {
		family, path, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid --font %q, want family=path.ttf", f)
		}
		ttf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading font %q: %w", path, err)
		}
		opts = append(opts, render.WithFont(family, ttf))
	}
	renderer, err := render.NewRenderer(opts...)
	if err != nil {
		return err
	}

	renderRow := func(rec certgen.Record, format certgen.Format) ([]byte, error) {
		return renderer.Render(tpl, rec, placements, format)
	}
	progress := func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\rGenerating certificates... %d%%", completed*100/total)
		if completed == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	blob, err := batch.Run(ctx, ds, renderRow, format, batch.NewZipArchive(flate.DefaultCompression), progress)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, blob, 0o644); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d certificates to %s\n", ds.Len(), outputPath)
	return nil
}

func loadDataset(ctx context.Context, ref string) (*certgen.Dataset, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return sheet.Fetch(ctx, ref)
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("opening sheet: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(ref), ".xlsx") {
		return sheet.ReadXLSX(f)
	}
	return sheet.ParseCSV(f)
}

func loadPlacements(path string, ds *certgen.Dataset) ([]certgen.Placement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	l, err := layout.Parse(data)
	if err != nil {
		return nil, err
	}
	placements := l.Store().List()
	for _, p := range placements {
		if !ds.HasColumn(p.Column) {
			fmt.Fprintf(os.Stderr, "certgen: warning: layout column %q not in sheet, skipping\n", p.Column)
		}
	}
	return placements, nil
}
