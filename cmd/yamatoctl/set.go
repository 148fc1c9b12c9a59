package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/yamato"
	"go.tigermatt.uk/yamato/driver/serialbridge"
	"go.tigermatt.uk/yamato/driver/stub"
	"go.tigermatt.uk/yamato/internal/config"
)

var txDevice string

func propsCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "props",
		Args: cobra.ExactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			c := yamato.New(yamato.NewPulseSender(stub.New()))
			for _, name := range c.Properties() {
				fmt.Printf("%-20s %s\n", name, mustGet(c, name))
			}
			return nil
		},
	}
}

func labelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "labels PROPERTY",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := yamato.New(yamato.NewPulseSender(stub.New()))
			labels, err := c.Labels(args[0])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(labels, " "))
			return nil
		},
	}
}

func setCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "set PROPERTY=LABEL...",
		Short: "Apply settings from defaults, sending one frame per setting",
		Args:  cobra.MinimumNArgs(1),
		RunE:  set,
	}
	cmd.Flags().StringVar(&txDevice, "device", txDevice, "Serial IR bridge (overrides transmit.device)")

	return &cmd
}

func encodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode PROPERTY=LABEL...",
		Short: "Print the frames set would send, without transmitting",
		Args:  cobra.MinimumNArgs(1),
		RunE:  encode,
	}
}

func set(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	assignments, err := parseAssignments(args)
	if err != nil {
		return err
	}

	if txDevice != "" {
		cfg.Transmit.Device = txDevice
		config.Normalize(cfg)
	}
	if cfg.Transmit.Device == "" {
		return fmt.Errorf("no transmit device configured; use encode for a dry run")
	}

	port, err := serialbridge.Open(cfg.Transmit.Device, cfg.Transmit.Baud)
	if err != nil {
		return err
	}
	defer port.Close()

	c := yamato.New(&serialbridge.Sender{Port: port}, yamato.WithLogger(traceLogger(cfg)))
	if err := apply(c, assignments); err != nil {
		return err
	}

	fmt.Println(c.DumpState())
	return nil
}

func encode(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	assignments, err := parseAssignments(args)
	if err != nil {
		return err
	}

	tx := stub.New()
	c := yamato.New(yamato.NewPulseSender(tx), yamato.WithLogger(traceLogger(cfg)))
	if err := apply(c, assignments); err != nil {
		return err
	}

	for i, frame := range tx.Frames() {
		fmt.Printf("%s=%s\n", assignments[i].prop, assignments[i].label)
		fmt.Println(serialbridge.FormatTimings(frame))
	}
	fmt.Println(c.DumpState())

	return nil
}

type assignment struct {
	prop, label string
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		prop, label, ok := strings.Cut(arg, "=")
		if !ok || prop == "" || label == "" {
			return nil, fmt.Errorf("expected PROPERTY=LABEL, got %q", arg)
		}
		out = append(out, assignment{prop: prop, label: label})
	}
	return out, nil
}

func apply(c *yamato.Controller, assignments []assignment) error {
	for _, a := range assignments {
		if err := c.Set(a.prop, a.label); err != nil {
			return fmt.Errorf("setting %s: %w", a.prop, err)
		}
	}
	return nil
}

func mustGet(c *yamato.Controller, name string) string {
	v, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}
