package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"ai-pitch-evaluator-be/pkg/events"
	pkgNats "ai-pitch-evaluator-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream result events from NATS until interrupted",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub, err := pkgNats.NewSubscriber(natsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	show := func(_ context.Context, evt events.Event) error {
		label := color.CyanString(evt.EventType())
		if evt.EventType() == events.PitchScored {
			label = color.GreenString(evt.EventType())
		}
		fmt.Printf("%s %s %v\n", evt.Timestamp().Format("15:04:05"), label, evt.Payload())
		return nil
	}
	for _, t := range []string{events.ResultUpdated, events.PitchScored} {
		if err := sub.Subscribe(ctx, t, "", show); err != nil {
			return err
		}
	}

	fmt.Println("watching events, Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
