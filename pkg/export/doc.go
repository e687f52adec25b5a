// Package export downloads and decodes OneSignal players CSV exports.
//
// A players export is requested with onesignal.Client.ExportPlayers, which
// returns the URL of a gzip-compressed CSV file. OneSignal generates the file
// asynchronously; until it exists the URL answers 404 and Download returns
// ErrNotReady. Callers decide whether and how often to try again.
//
// # Usage
//
//	res, err := client.ExportPlayers(ctx, onesignal.ExportOptions{})
//	if err != nil {
//		return err
//	}
//
//	dl := export.NewDownloader(export.WithLogger(log))
//	path, err := dl.Download(ctx, res.CSVFileURL(), export.NewTempFileSink(""))
//	if errors.Is(err, export.ErrNotReady) {
//		// try later
//	}
//
//	f, _ := os.Open(path)
//	defer f.Close()
//	players, err := export.ReadPlayers(f)
//
// Files can also be kept under a directory with LocalSink or uploaded to a
// bucket with S3Sink.
package export
