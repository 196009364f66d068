package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kulaginds/rdp-orders/internal/orders"
)

func dumpCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dump <capture-file>",
		Short: "Print every decoded order, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := decoderSettings()
			if err != nil {
				return err
			}

			handler := &dumpHandler{out: cmd.OutOrStdout(), jsonOutput: jsonOutput}
			decoder := orders.NewDecoder(settings, handler, nil)

			return walkCapture(args[0], func(frame int, payload []byte) error {
				handler.frame = frame

				if err := decoder.ProcessOrders(payload); err != nil {
					return fmt.Errorf("frame %d: %w", frame, err)
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print orders as JSON instead of text")

	return cmd
}

// dumpHandler prints each decoded order. The text form is one line per
// order; the JSON form matches the gateway's event schema.
type dumpHandler struct {
	out        io.Writer
	jsonOutput bool
	frame      int
}

func (h *dumpHandler) SetClip(bounds *orders.Bounds) error {
	if bounds == nil {
		return nil
	}

	return h.print("clip", bounds)
}

func (h *dumpHandler) Primary(order orders.PrimaryOrder) error {
	return h.print(order.Type().String(), order)
}

func (h *dumpHandler) Secondary(order orders.SecondaryOrder) error {
	return h.print(order.Type().String(), order)
}

func (h *dumpHandler) AltSec(order orders.AltSecOrder) error {
	return h.print(order.Type().String(), order)
}

func (h *dumpHandler) print(name string, order interface{}) error {
	if h.jsonOutput {
		event := struct {
			Frame int         `json:"frame"`
			Type  string      `json:"type"`
			Order interface{} `json:"order"`
		}{h.frame, name, order}

		data, err := json.Marshal(event)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(h.out, string(data))

		return err
	}

	_, err := fmt.Fprintf(h.out, "frame %d: %s %+v\n", h.frame, name, order)

	return err
}

var _ orders.Handler = (*dumpHandler)(nil)
