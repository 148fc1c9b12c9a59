package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/yamato"
	"go.tigermatt.uk/yamato/driver/stub"
	"golang.org/x/sync/errgroup"
)

func dump(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	defer f.Close()

	c := yamato.New(yamato.NewPulseSender(stub.New()),
		yamato.WithMatcher(cfg.Receive.Tolerance()),
		yamato.WithLogger(traceLogger(cfg)))

	msgs := make(chan yamato.Message, 100)

	var g errgroup.Group
	g.Go(func() error { return processMsgs(c, msgs) })
	g.Go(func() error { return yamato.ReadIn(msgs, f) })

	return g.Wait()
}

func processMsgs(c *yamato.Controller, msgs <-chan yamato.Message) error {
	for msg := range msgs {
		printFrame(c, msg)
	}
	return nil
}

func printFrame(c *yamato.Controller, msg yamato.Message) {
	ts := msg.Timestamp.Format("15:04:05.000")

	f, err := c.Receive(msg.Capture)
	if err != nil {
		fmt.Printf("%s: %d entries: %v\n", ts, len(msg.Capture.Buffer), err)
		return
	}

	action := f.Action
	if action == "" {
		action = fmt.Sprintf("tag %02X", f.Payload[yamato.TagIndex])
	}
	fmt.Printf("%s: %s %s\n", ts, yamato.FormatPayload(f.Payload), action)
}
