// mmi-demo wires an mmi.Resource to a loopback pipe, registers menu
// and close_mmi callbacks that log what they receive, and sends one
// close_mmi object through the pipe. No PDU is delivered to the
// resource, so the registered callbacks do not fire during a run.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dvbtux/mmi221/pkg/mmi"
	"github.com/dvbtux/mmi221/pkg/transportfd"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	r, w, err := os.Pipe()
	if err != nil {
		logger.Error("create loopback pipe", "error", err)
		os.Exit(1)
	}
	defer r.Close()
	defer w.Close()

	send := transportfd.New(int(w.Fd()))
	resource := mmi.New(send, logger, 0)

	resource.RegisterMenuCallback(func(slot uint8, session uint16, menu mmi.MenuList) {
		logger.Info("menu received",
			"slot", slot, "session", session,
			"title", string(menu.Title.Data),
			"item_count", menu.ItemCount)
		resource.MenuAnsw(session, 1)
	})
	resource.RegisterCloseCallback(func(slot uint8, session uint16, cmdID, delay uint8) {
		logger.Info("close_mmi received", "slot", slot, "session", session, "cmd_id", cmdID, "delay", delay)
	})

	logger.Info("demo resource ready", "fd", int(w.Fd()))

	resource.Close(1, mmi.CloseCmdIDImmediate, 0)
}
