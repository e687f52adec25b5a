package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/onesignal/pkg/fields"
	"github.com/dmitrymomot/onesignal/pkg/notification"
)

type sendOptions struct {
	file            string
	channel         string
	segments        []string
	externalUserIDs []string
	idempotent      bool
	dryRun          bool
}

func newSendCmd(root *rootOptions) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a notification described by a YAML or JSON attribute file",
		Example: `  onesignal send --file welcome.yaml --segment "Active Users"
  onesignal send --file receipt.json --channel email --external-user-id u-42 --idempotent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "attribute file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.channel, "channel", "c", string(notification.ChannelPush), "delivery channel: push, email or sms")
	cmd.Flags().StringSliceVar(&opts.segments, "segment", nil, "included segment (repeatable)")
	cmd.Flags().StringSliceVar(&opts.externalUserIDs, "external-user-id", nil, "recipient external user id (repeatable)")
	cmd.Flags().BoolVar(&opts.idempotent, "idempotent", false, "attach a random external_id unless the file sets one")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the request body without sending it")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSend(cmd *cobra.Command, root *rootOptions, opts *sendOptions) error {
	attrs, err := readAttributes(opts.file)
	if err != nil {
		return err
	}

	if len(opts.segments) > 0 {
		attrs[fields.IncludedSegments] = opts.segments
	}
	if len(opts.externalUserIDs) > 0 {
		attrs[fields.IncludeExternalUserIDs] = opts.externalUserIDs
	}
	if _, ok := attrs[fields.ExternalID]; !ok && opts.idempotent {
		attrs[fields.ExternalID] = notification.NewExternalID()
	}

	n, err := buildNotification(notification.Channel(opts.channel), attrs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		body, err := n.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(body))
		return err
	}

	client, _, err := root.client(cmd)
	if err != nil {
		return err
	}

	res, err := client.CreateNotification(cmd.Context(), n)
	if err != nil {
		return err
	}

	summary := map[string]any{fields.ResponseID: res.ID()}
	if id := res.ExternalID(); id != "" {
		summary[fields.ExternalID] = id
	}
	if count, ok := res.Recipients(); ok {
		summary[fields.ResponseRecipients] = count
	}
	if errs := res.Errors(); len(errs) > 0 {
		summary[fields.ResponseErrors] = errs
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}
	return res.Err()
}

// readAttributes decodes a YAML or JSON object. JSON is valid YAML.
func readAttributes(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attribute file: %w", err)
	}

	attrs := map[string]any{}
	if err := yaml.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("decode attribute file %s: %w", path, err)
	}
	return attrs, nil
}

func buildNotification(channel notification.Channel, attrs map[string]any) (*notification.Notification, error) {
	switch channel {
	case notification.ChannelPush:
		return notification.NewPush().SetAttributes(attrs).Build()
	case notification.ChannelEmail:
		return notification.NewEmail().SetAttributes(attrs).Build()
	case notification.ChannelSMS:
		return notification.NewSms().SetAttributes(attrs).Build()
	default:
		return nil, fmt.Errorf("%w: unknown channel %q", notification.ErrInvalidArgument, channel)
	}
}
