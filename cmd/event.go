package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/smart-recruiter/internal/core/events"
	"github.com/frahmantamala/smart-recruiter/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish lifecycle events by hand, for checking subscribers and the Kafka relay.`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a lifecycle event",
	Long:  `Publish an event to the in-process bus, and to Kafka when events.kafka_enabled is set.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishEvent(cmd.Context(), args[0])
	},
}

var (
	eventData      string
	eventSubjectID string
)

func publishEvent(ctx context.Context, eventType string) error {
	if !knownEventType(eventType) {
		return fmt.Errorf("unknown event type %q, expected one of %v", eventType, events.LifecycleEventTypes)
	}

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	logger.Init(cfg.Env, cfg.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	bus := events.NewEventBus(lg)
	bus.Subscribe(events.AllEvents, func(ctx context.Context, event events.Event) error {
		lg.Info("event delivered",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	var relay *events.KafkaRelay
	if cfg.Events.KafkaEnabled {
		relay = events.NewKafkaRelay(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic, cfg.Events.BufferSize, lg)
		relay.Attach(bus)
	}

	event := events.NewEvent(eventType, map[string]interface{}{
		"subject_id": eventSubjectID,
		"message":    eventData,
		"source":     "cli-command",
	})

	lg.Info("publishing event", "event_type", eventType, "event_id", event.EventID())
	if err := bus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	if relay != nil {
		// flushes the buffered producer
		relay.Close()
	}
	return nil
}

func knownEventType(eventType string) bool {
	for _, t := range events.LifecycleEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "manual event", "Event data message")
	publishEventCmd.Flags().StringVar(&eventSubjectID, "subject", "", "Applicant or job id the event refers to")

	eventCmd.AddCommand(publishEventCmd)
}
