package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"

	tyson "github.com/rphilander/tyson/core"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	expr := flag.String("e", "", "evaluate this expression instead of reading a JSON request from stdin")
	flag.Parse()

	cfg, err := tyson.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var msg map[string]any
	if *expr != "" {
		msg = map[string]any{"op": "eval", "expr": *expr}
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			fmt.Fprintf(os.Stderr, "parse JSON: %v\n", err)
			os.Exit(1)
		}
		if msg == nil {
			fmt.Fprintln(os.Stderr, "parse JSON: request must be an object")
			os.Exit(1)
		}
	}

	// Add id if missing
	if _, ok := msg["id"]; !ok {
		msg["id"] = tyson.NextID()
	}

	conn, err := net.Dial("unix", cfg.Socket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := tyson.WriteMsg(conn, msg); err != nil {
		fmt.Fprintf(os.Stderr, "send: %v\n", err)
		os.Exit(1)
	}

	resp, err := tyson.ReadMsg(conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "receive: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "format response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
