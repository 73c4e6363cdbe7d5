// Fakehost serves /healthy the way a monitored host would, for trying the
// dashboard locally.
//
// Usage:
//
//	go run scripts/fakehost.go -port 8081 -mode ok
//
// Modes: ok (200 with a JSON body), error (500), slow (answers after -delay),
// garbage (200 with a body that is not JSON).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

func main() {
	port := flag.Int("port", 8081, "port to listen on")
	mode := flag.String("mode", "ok", "response mode: ok, error, slow, garbage")
	delay := flag.Duration("delay", 5*time.Second, "response delay in slow mode")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil)).With(slog.String("mode", *mode))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthy", func(w http.ResponseWriter, r *http.Request) {
		log.Info("Probe received", slog.String("from", r.RemoteAddr))

		switch *mode {
		case "error":
			http.Error(w, "unhealthy", http.StatusInternalServerError)
		case "garbage":
			w.Write([]byte("<html>definitely not json</html>"))
		case "slow":
			select {
			case <-time.After(*delay):
			case <-r.Context().Done():
				return
			}
			fallthrough
		default:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"status": "ok",
				"time":   time.Now().UTC().Format(time.RFC3339),
			})
		}
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Info("Fake host listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("Server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}
