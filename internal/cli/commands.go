package cli

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danmuck/scadmin/internal/admin"
	"github.com/danmuck/scadmin/internal/config"
	"github.com/danmuck/scadmin/internal/protocol/frame"
	"github.com/danmuck/scadmin/internal/rpc"
	"github.com/spf13/cobra"
)

// Resource kinds accepted on the command line.
const (
	KindTopic     = "topic"
	KindCustomSpu = "custom-spu"
	KindSpuGroup  = "spu-group"
)

func buildRequest(kind, key string) (admin.DeleteRequest, error) {
	switch strings.ToLower(kind) {
	case KindTopic:
		return admin.IntoRequest[admin.TopicSpec](key), nil
	case KindCustomSpu:
		if id, err := strconv.ParseInt(key, 10, 32); err == nil {
			return admin.DeleteCustomSpuKey(int32(id)), nil
		}
		return admin.DeleteCustomSpuKey(key), nil
	case KindSpuGroup:
		return admin.IntoRequest[admin.SpuGroupSpec](key), nil
	default:
		return nil, fmt.Errorf("unknown resource kind %q (want %s, %s or %s)", kind, KindTopic, KindCustomSpu, KindSpuGroup)
	}
}

func (a *app) encodeCmd() *cobra.Command {
	var (
		asFrame       bool
		raw           bool
		correlationID uint32
	)
	cmd := &cobra.Command{
		Use:   "encode <topic|custom-spu|spu-group> <key>",
		Short: "Encode a delete request and print it as hex",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args[0], args[1])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if asFrame {
				hdr := rpc.RequestHeader{
					APIVersion:    a.cfg.APIVersion,
					CorrelationID: correlationID,
					ClientID:      a.cfg.ClientID,
				}
				err = rpc.EncodeRequest(&buf, hdr, req, a.cfg.Limits)
			} else {
				buf.Grow(req.WriteSize(a.cfg.APIVersion))
				err = admin.Encode(&buf, req, a.cfg.APIVersion)
			}
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			encoded := hex.EncodeToString(buf.Bytes())
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), encoded)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.Format(encodedView{
				Label: req.Label(),
				Size:  buf.Len(),
				Hex:   encoded,
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asFrame, "frame", false, "wrap the payload in a request frame")
	cmd.Flags().BoolVar(&raw, "raw", false, "print only the hex bytes")
	cmd.Flags().Uint32Var(&correlationID, "correlation-id", 1, "frame correlation id")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	var asFrame bool
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex delete request payload or request frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := hex.DecodeString(strings.Join(strings.Fields(args[0]), ""))
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}

			if asFrame {
				f, err := frame.ReadFrame(bytes.NewReader(b), a.cfg.Limits)
				if err != nil {
					return fmt.Errorf("read frame: %w", err)
				}
				hdr, req, err := rpc.DecodeRequest(f)
				if err != nil {
					return fmt.Errorf("decode request: %w", err)
				}
				del, ok := req.(admin.DeleteRequest)
				if !ok {
					return fmt.Errorf("decode request: %w: %s", rpc.ErrUnsupportedAPIKey, hdr.APIKey)
				}
				fmt.Fprint(cmd.OutOrStdout(), a.formatter.Format(withHeader(newRequestView(del, hdr.APIVersion), hdr)))
				return nil
			}

			r := bytes.NewReader(b)
			req, err := admin.Decode(r, a.cfg.APIVersion)
			if err != nil {
				return fmt.Errorf("decode request: %w", err)
			}
			if r.Len() != 0 {
				return fmt.Errorf("decode request: %w: %d", rpc.ErrTrailingBytes, r.Len())
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.Format(newRequestView(req, a.cfg.APIVersion)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asFrame, "frame", false, "input is a full request frame")
	return cmd
}

func (a *app) labelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List the known delete request labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.Format(admin.DeleteLabels()))
			return nil
		},
	}
}

type stdio struct {
	io.Reader
	io.Writer
}

func (a *app) serveOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve-once",
		Short: "Answer one binary request frame from stdin with a dry-run response on stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := rpc.NewDispatcher(rpc.DryRunDeleter{}, a.cfg.Limits)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return d.Serve(ctx, stdio{Reader: cmd.InOrStdin(), Writer: cmd.OutOrStdout()})
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or validate scadminctl config files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path|->",
		Short: "Write the default config template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				fmt.Fprint(cmd.OutOrStdout(), config.Template())
				return nil
			}
			if err := config.WriteTemplate(args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated config at %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
