package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onesignal/pkg/export"
	"github.com/dmitrymomot/onesignal/pkg/onesignal"
)

type exportOptions struct {
	extraFields     []string
	segment         string
	lastActiveSince time.Duration
	sink            string
	dir             string
	wait            time.Duration
	interval        time.Duration
	noDownload      bool
	count           bool
	uploadTimeout   time.Duration
	awsProfile      string
	s3Accelerate    bool
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export players to a CSV file",
		Long: `Requests a players CSV export and downloads the generated file once it is
available. The file is stored in a temp file, a local directory or an S3 bucket
configured through EXPORT_S3_* variables.`,
		Example: `  onesignal export --segment "Active Users" --sink local --dir ./exports --wait 5m
  onesignal export --extra-field country --extra-field external_user_id --no-download`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, root, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.extraFields, "extra-field", nil, "additional column (repeatable)")
	cmd.Flags().StringVar(&opts.segment, "segment", "", "export only this segment")
	cmd.Flags().DurationVar(&opts.lastActiveSince, "last-active-within", 0, "export players active within this duration")
	cmd.Flags().StringVar(&opts.sink, "sink", "temp", "where to store the file: temp, local or s3")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory for the temp and local sinks")
	cmd.Flags().DurationVar(&opts.wait, "wait", 0, "keep trying the download for this long while the file is generated")
	cmd.Flags().DurationVar(&opts.interval, "interval", 10*time.Second, "delay between download attempts")
	cmd.Flags().BoolVar(&opts.noDownload, "no-download", false, "print the file URL and exit")
	cmd.Flags().BoolVar(&opts.count, "count", false, "print the number of exported players (temp and local sinks)")
	cmd.Flags().DurationVar(&opts.uploadTimeout, "upload-timeout", 5*time.Minute, "HTTP timeout for S3 uploads")
	cmd.Flags().StringVar(&opts.awsProfile, "aws-profile", "", "shared AWS config profile for the s3 sink")
	cmd.Flags().BoolVar(&opts.s3Accelerate, "s3-accelerate", false, "upload through S3 transfer acceleration")

	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, log, err := root.client(cmd)
	if err != nil {
		return err
	}

	req := onesignal.ExportOptions{
		ExtraFields: opts.extraFields,
		SegmentName: opts.segment,
	}
	if opts.lastActiveSince > 0 {
		req.LastActiveSince = time.Now().Add(-opts.lastActiveSince)
	}

	res, err := client.ExportPlayers(ctx, req)
	if err != nil {
		return err
	}
	if opts.noDownload {
		_, err := fmt.Fprintln(out, res.CSVFileURL())
		return err
	}

	sink, err := newSink(ctx, opts, root.envFiles())
	if err != nil {
		return err
	}

	dl := export.NewDownloader(export.WithLogger(log))
	location, err := downloadWhenReady(ctx, log, dl, res.CSVFileURL(), sink, opts.wait, opts.interval)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, location); err != nil {
		return err
	}

	if opts.count && opts.sink != "s3" {
		n, err := countPlayers(location)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%d players\n", n)
		return err
	}
	return nil
}

func newSink(ctx context.Context, opts *exportOptions, envFiles []string) (export.Sink, error) {
	switch opts.sink {
	case "temp":
		return export.NewTempFileSink(opts.dir), nil
	case "local":
		dir := opts.dir
		if dir == "" {
			dir = "."
		}
		return export.NewLocalSink(dir)
	case "s3":
		cfg, err := export.LoadS3Config(envFiles...)
		if err != nil {
			return nil, err
		}
		return export.NewS3Sink(ctx, cfg, s3Options(opts)...)
	default:
		return nil, fmt.Errorf("unknown sink %q: must be temp, local or s3", opts.sink)
	}
}

func s3Options(opts *exportOptions) []export.S3Option {
	s3opts := []export.S3Option{
		export.WithS3HTTPClient(onesignal.NewHTTPClient(opts.uploadTimeout)),
	}
	if opts.awsProfile != "" {
		s3opts = append(s3opts, export.WithS3Profile(opts.awsProfile))
	}
	if opts.s3Accelerate {
		s3opts = append(s3opts, export.WithS3Accelerate())
	}
	return s3opts
}

// downloadWhenReady retries on export.ErrNotReady until wait has elapsed.
func downloadWhenReady(ctx context.Context, log *slog.Logger, dl *export.Downloader, url string, sink export.Sink, wait, interval time.Duration) (string, error) {
	deadline := time.Now().Add(wait)
	for {
		location, err := dl.Download(ctx, url, sink)
		if !errors.Is(err, export.ErrNotReady) || time.Now().Add(interval).After(deadline) {
			return location, err
		}

		log.InfoContext(ctx, "export not ready yet", slog.Duration("retry_in", interval))

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}

func countPlayers(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	pr, err := export.NewPlayerReader(f)
	if err != nil {
		return 0, err
	}
	defer pr.Close()

	n := 0
	for {
		_, err := pr.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return 0, err
		}
		n++
	}
}
