// camctl pushes camera frames into a hearth relay and pulls them back out.
//
//	camctl send    --email me@example.com --password ... --building 1 --room 2 --camera 3 --file ./snapshots
//	camctl receive --token $TOKEN --building 1 --room 2 --camera 3 --out ./frames
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/hearthhq/hearth/pkg/homesdk"
)

type options struct {
	url      string
	token    string
	email    string
	password string
	key      homesdk.StreamKey
	interval time.Duration
	count    int
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.url, "url", envOr("HEARTH_URL", "http://localhost:8080"), "base URL of the home core")
	fs.StringVar(&o.token, "token", os.Getenv("HEARTH_TOKEN"), "access token (skips login)")
	fs.StringVar(&o.email, "email", "", "account email used to log in")
	fs.StringVar(&o.password, "password", os.Getenv("HEARTH_PASSWORD"), "account password")
	fs.Int64Var(&o.key.BuildingID, "building", 0, "building ID")
	fs.Int64Var(&o.key.RoomID, "room", 0, "room ID")
	fs.Int64Var(&o.key.CameraID, "camera", 0, "camera ID")
	fs.DurationVar(&o.interval, "interval", time.Second, "delay between sent frames")
	fs.IntVarP(&o.count, "count", "n", 0, "stop after this many frames (0 = until interrupted)")
}

func (o *options) session(ctx context.Context) (*homesdk.Session, error) {
	client := homesdk.NewClient(o.url)
	if o.token != "" {
		return client.NewSession(o.token, 0), nil
	}
	if o.email == "" || o.password == "" {
		return nil, errors.New("either --token or --email and --password are required")
	}
	return client.Login(ctx, o.email, o.password)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return errors.New("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "send":
		return runSend(ctx, args[1:])
	case "receive":
		return runReceive(ctx, args[1:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runSend(ctx context.Context, args []string) error {
	var opts options
	var file string

	fs := pflag.NewFlagSet("camctl send", pflag.ContinueOnError)
	opts.addFlags(fs)
	fs.StringVarP(&file, "file", "f", "-", "frame file or directory of frames to cycle through, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	frames, err := readFrames(file)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames found in %s", file)
	}

	session, err := opts.session(ctx)
	if err != nil {
		return err
	}

	producer, err := session.Producer(ctx, opts.key)
	if err != nil {
		return err
	}
	defer producer.Close()

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	for sent := 0; opts.count == 0 || sent < opts.count; sent++ {
		frame := frames[sent%len(frames)]
		if err := producer.Send(ctx, frame); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fmt.Fprintf(os.Stderr, "sent frame %d (%d bytes)\n", sent+1, len(frame))

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func runReceive(ctx context.Context, args []string) error {
	var opts options
	var outDir string

	fs := pflag.NewFlagSet("camctl receive", pflag.ContinueOnError)
	opts.addFlags(fs)
	fs.StringVarP(&outDir, "out", "o", "", "directory to write frames into (default: report sizes only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}

	session, err := opts.session(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	received := 0
	err = session.ConsumeWithRetry(ctx, opts.key, func(frame []byte) error {
		received++
		if outDir != "" {
			name := filepath.Join(outDir, fmt.Sprintf("frame-%06d.bin", received))
			if err := os.WriteFile(name, frame, 0o644); err != nil {
				return err
			}
		}
		fmt.Fprintf(os.Stderr, "received frame %d (%d bytes)\n", received, len(frame))

		if opts.count > 0 && received >= opts.count {
			cancel()
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readFrames loads a single frame from a file or stdin, or every regular
// file of a directory in name order.
func readFrames(path string) ([][]byte, error) {
	if path == "-" {
		frame, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return [][]byte{frame}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		frame, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return [][]byte{frame}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var frames [][]byte
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		frame, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: camctl <command> [flags]

Commands:
  send      push a frame to /send at a fixed interval
  receive   stream frames from /receive

Authenticate with --token, or --email and --password.
Run "camctl <command> --help" for the flags of a command.
`)
}
