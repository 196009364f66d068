package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kulaginds/rdp-orders/internal/orders"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <capture-file>",
		Short: "Print per-order-type counts and payload totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := decoderSettings()
			if err != nil {
				return err
			}

			handler := newStatsHandler()
			decoder := orders.NewDecoder(settings, handler, nil)

			err = walkCapture(args[0], func(frame int, payload []byte) error {
				handler.updates++
				handler.bytes += len(payload)

				if err := decoder.ProcessOrders(payload); err != nil {
					return fmt.Errorf("frame %d: %w", frame, err)
				}

				return nil
			})
			if err != nil {
				return err
			}

			handler.report(cmd.OutOrStdout())

			return nil
		},
	}
}

type statsHandler struct {
	counts  map[string]int
	updates int
	bytes   int
}

func newStatsHandler() *statsHandler {
	return &statsHandler{counts: map[string]int{}}
}

func (h *statsHandler) SetClip(*orders.Bounds) error { return nil }

func (h *statsHandler) Primary(order orders.PrimaryOrder) error {
	h.counts[order.Type().String()]++
	return nil
}

func (h *statsHandler) Secondary(order orders.SecondaryOrder) error {
	h.counts[order.Type().String()]++
	return nil
}

func (h *statsHandler) AltSec(order orders.AltSecOrder) error {
	h.counts[order.Type().String()]++
	return nil
}

func (h *statsHandler) report(out io.Writer) {
	names := make([]string, 0, len(h.counts))
	total := 0

	for name, count := range h.counts {
		names = append(names, name)
		total += count
	}

	sort.Slice(names, func(i, j int) bool {
		if h.counts[names[i]] != h.counts[names[j]] {
			return h.counts[names[i]] > h.counts[names[j]]
		}

		return names[i] < names[j]
	})

	for _, name := range names {
		fmt.Fprintf(out, "%-24s %d\n", name, h.counts[name])
	}

	fmt.Fprintf(out, "\n%d orders in %d updates, %d payload bytes\n", total, h.updates, h.bytes)
}

var _ orders.Handler = (*statsHandler)(nil)
