// randcore-sender streams generator output to a TCP or UDP endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/database64128/randcore-go"
	"github.com/database64128/randcore-go/blockrand"
	"github.com/database64128/randcore-go/cryptorand"
	"github.com/database64128/randcore-go/fastrand"
	"github.com/database64128/randcore-go/sender"
	"go.uber.org/zap"
)

var (
	logLevel      slog.Level
	generator     string
	seed          string
	network       string
	endpoint      string
	duration      time.Duration
	retryInterval time.Duration
	packetSize    int
	txSpeedMbps   int
	concurrency   int
)

func init() {
	flag.TextVar(&logLevel, "logLevel", slog.LevelInfo, "Log level")
	flag.StringVar(&generator, "generator", "fastrand", "Generator to use. Accepts: fastrand, block32, block64, crypto")
	flag.StringVar(&seed, "seed", "", "Seed for block32 and block64 generators")
	flag.StringVar(&network, "network", "tcp", "Endpoint network. Accepts: tcp, tcp4, tcp6, udp, udp4, udp6")
	flag.StringVar(&endpoint, "endpoint", "", "Endpoint in host:port")
	flag.DurationVar(&duration, "duration", 0, "Duration for sending")
	flag.DurationVar(&retryInterval, "retryInterval", 0, "Duration to wait before retrying connection")
	flag.IntVar(&packetSize, "packetSize", 1452, "UDP payload size. Defaults to 1452. 1452 (UDP payload) + 8 (UDP header) + 40 (IPv6 header) = 1500 (Typical Ethernet MTU).")
	flag.IntVar(&txSpeedMbps, "txSpeedMbps", 0, "UDP transfer speed in Mbps.")
	flag.IntVar(&concurrency, "concurrency", 1, "Number of concurrent connections to use.")
}

func newSourceFunc(generator, seed string) (func() randcore.Source, error) {
	switch generator {
	case "fastrand":
		return func() randcore.Source {
			f := fastrand.New()
			return &f
		}, nil
	case "block32":
		return func() randcore.Source {
			return blockrand.NewBlock32([]byte(seed))
		}, nil
	case "block64":
		return func() randcore.Source {
			return blockrand.NewBlock64([]byte(seed))
		}, nil
	case "crypto":
		return func() randcore.Source {
			return cryptorand.Source{}
		}, nil
	default:
		return nil, fmt.Errorf("unsupported generator: %s", generator)
	}
}

func main() {
	flag.Parse()

	if endpoint == "" {
		badFlagValue("Missing -endpoint <host:port>.")
	}

	if retryInterval < 0 {
		badFlagValue("-retryInterval cannot be negative.")
	}

	if packetSize < 0 {
		badFlagValue("-packetSize cannot be negative.")
	}

	if txSpeedMbps < 0 {
		badFlagValue("-txSpeedMbps cannot be negative.")
	}

	if concurrency < 1 {
		badFlagValue("-concurrency must be at least 1.")
	}

	switch network {
	case "tcp", "tcp4", "tcp6":
	case "udp", "udp4", "udp6":
		if txSpeedMbps == 0 {
			badFlagValue("-txSpeedMbps is required for UDP endpoints.")
		}
	default:
		badFlagValue("Invalid -network.")
	}

	newSource, err := newSourceFunc(generator, seed)
	if err != nil {
		badFlagValue("Invalid -generator.")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)

	if duration <= 0 {
		ctx, cancel = context.WithCancel(context.Background())
	} else {
		ctx, cancel = context.WithTimeout(context.Background(), duration)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.LogAttrs(ctx, slog.LevelInfo, "Received exit signal", slog.Any("signal", sig))
		cancel()
	}()

	if txSpeedMbps == 0 {
		zlogger, err := zap.NewProduction()
		if err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "Failed to create zap logger", slog.Any("error", err))
			os.Exit(1)
		}
		defer zlogger.Sync()
		sender.NewTCPSender(net.Dialer{}, network, endpoint, retryInterval, newSource).RunParallel(ctx, zlogger, concurrency)
	} else {
		s, err := sender.NewThrottledSender(net.ListenConfig{}, net.Dialer{}, network, endpoint, packetSize, txSpeedMbps, retryInterval, newSource)
		if err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "Failed to create throttled sender", slog.Any("error", err))
			os.Exit(1)
		}
		s.RunParallel(ctx, logger, concurrency)
	}
}

func badFlagValue(a ...any) {
	fmt.Fprintln(os.Stderr, a...)
	flag.Usage()
	os.Exit(1)
}
