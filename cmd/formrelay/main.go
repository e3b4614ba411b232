package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path"

	"github.com/tb-digital/formrelay"
	"github.com/tb-digital/formrelay/api"
	"github.com/tb-digital/formrelay/listener"
)

func main() {
	configDir := flag.String("config-dir", "", "configuration directory (defaults to the formrelay folder under the user config dir)")
	flag.Parse()

	dir := *configDir
	if dir == "" {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("resolving user config dir: %v", err)
		}
		dir = path.Join(userConfigDir, "formrelay")
	}

	relay, err := formrelay.New(
		formrelay.WithConfigDir(dir),
		formrelay.WithDatabase(""),
		formrelay.WithRemoteFromConfig(),
	)
	if err != nil {
		log.Fatalf("starting relay: %v", err)
	}
	defer relay.Close()

	router := api.NewRouter(relay)

	addr := net.JoinHostPort(relay.Config.ListenAddr, relay.Config.ListenPort)
	baseListener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listening on %s: %v", addr, err)
	}

	relayListener := listener.NewRelayListener(baseListener)
	relayListener.OnError = func(err error) {
		relay.WriteLog("WARN", fmt.Sprintf("recoverable listener error, connection rejected: %v", err))
	}

	log.Printf("formrelay server starting on %s", addr)
	if err := http.Serve(relayListener, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
