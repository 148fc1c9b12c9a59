package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/yamato"
	"go.tigermatt.uk/yamato/driver/serialbridge"
	"go.tigermatt.uk/yamato/driver/stub"
	"golang.org/x/sync/errgroup"
)

var (
	recordFile = ""
	rxBaud     = 0
)

func sniffCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "sniff [DEVICE]",
		Short: "Decode frames captured by the IR bridge",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sniff,
	}
	cmd.Flags().StringVar(&recordFile, "record", recordFile, "Record captures to this file")
	cmd.Flags().IntVar(&rxBaud, "baud", rxBaud, "Baud rate (overrides receive.baud)")

	return &cmd
}

func listenStop() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx
}

func sniff(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	device, baud := cfg.Receive.Device, cfg.Receive.Baud
	if len(args) == 1 {
		device = args[0]
	}
	if rxBaud != 0 {
		baud = rxBaud
	}
	if device == "" {
		return fmt.Errorf("no receive device given")
	}
	if baud == 0 {
		baud = 115200
	}

	port, err := serialbridge.Open(device, baud)
	if err != nil {
		return err
	}

	var rec *yamato.Recorder
	if recordFile != "" {
		f, err := os.Create(recordFile)
		if err != nil {
			return fmt.Errorf("creating record file: %w", err)
		}
		defer f.Close()
		rec = &yamato.Recorder{Dest: f}
	}

	tolerance := cfg.Receive.Tolerance()
	c := yamato.New(yamato.NewPulseSender(stub.New()),
		yamato.WithMatcher(tolerance),
		yamato.WithLogger(traceLogger(cfg)))

	ctx, cancel := context.WithCancel(listenStop())
	defer cancel()

	captures := make(chan yamato.Message, 16)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		if err := port.Close(); err != nil {
			log.Printf("closing %s: %v", device, err)
		}
		return nil
	})
	g.Go(func() error {
		defer close(captures)

		s := yamato.Sniffer{
			Port: port,
			Tick: cfg.Receive.Tick(),
			OnCapture: func(capture yamato.Capture) {
				select {
				case captures <- yamato.Message{Capture: capture, Timestamp: time.Now()}:
				case <-ctx.Done():
				}
			},
		}
		err := s.Consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for msg := range captures {
			if rec != nil {
				if err := rec.Receive(msg); err != nil {
					return fmt.Errorf("recording capture: %w", err)
				}
			}
			printFrame(c, msg)
		}
		cancel()
		return nil
	})

	return g.Wait()
}
