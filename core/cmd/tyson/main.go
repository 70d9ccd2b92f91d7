package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	tyson "github.com/rphilander/tyson/core"
)

const promptCont = "...    "

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := tyson.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(repl(cfg))
}

func repl(cfg tyson.Config) int {
	fmt.Println("Tyson Version " + tyson.Version)
	fmt.Println("Press Ctrl+c to Exit")
	fmt.Println()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var transcript *tyson.Transcript
	if cfg.Transcript != "" {
		t, err := tyson.OpenTranscript(cfg.Transcript)
		if err != nil {
			log.Printf("transcript disabled: %v", err)
		} else {
			transcript = t
			defer transcript.Close()
			seedHistory(ln, transcript, cfg.HistoryLimit)
		}
	}

	ev := tyson.NewEvaluator()
	defer ev.Env.Release()

	for {
		input, ok := readInput(ln, cfg.Prompt)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := command(ev, trimmed); quit {
				return 0
			}
			continue
		}

		trace := ev.Run(input)
		if trace.Kind == "" {
			fmt.Fprintln(os.Stderr, trace.Error)
		} else {
			fmt.Println(trace.Result)
		}
		if transcript != nil {
			if err := transcript.Record(trace); err != nil {
				log.Printf("record transcript: %v", err)
			}
		}
	}
}

// readInput keeps prompting while the buffered text ends inside an open
// group. It reports false on end of input or Ctrl+C.
func readInput(ln *liner.State, prompt string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			log.Printf("read input: %v", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := tyson.Parse(src); tyson.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// command runs a colon command and reports whether the REPL should exit.
func command(ev *tyson.Evaluator, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	switch name {
	case ":quit":
		return true
	case ":env":
		for _, n := range ev.Env.Names() {
			v := ev.Env.Get(n)
			fmt.Printf("%-8s %s\n", n, v.String())
			v.Release()
		}
	case ":ast":
		tree, err := tyson.Parse(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		tree.Print(os.Stdout)
		fmt.Printf("nodes: %d\n", tree.Count())
	default:
		fmt.Println("unknown command. Try :env, :ast <expr> or :quit.")
	}
	return false
}

func seedHistory(ln *liner.State, t *tyson.Transcript, limit int) {
	if limit == 0 {
		return
	}
	rows, err := t.Recent(limit)
	if err != nil {
		log.Printf("load history: %v", err)
		return
	}
	for _, r := range rows {
		ln.AppendHistory(strings.ReplaceAll(r.Input, "\n", " "))
	}
}
