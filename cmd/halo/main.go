package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/halo/internal/config"
	"github.com/1broseidon/halo/internal/ipc"
	"github.com/1broseidon/halo/internal/mcp"
	"github.com/1broseidon/halo/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runOverlay(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "flash":
		os.Exit(runFlash(os.Args[2:]))
	case "timer":
		os.Exit(runTimer(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: halo <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the overlay (foreground)")
	fmt.Fprintln(w, "  status              Show overlay status")
	fmt.Fprintln(w, "  flash               Flash the overlay's taskbar entry")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  timer set           Set countdown minutes")
	fmt.Fprintln(w, "  timer start         Start or resume the countdown")
	fmt.Fprintln(w, "  timer stop          Pause the countdown")
	fmt.Fprintln(w, "  timer reset         Reset the countdown")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive control panel")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'halo <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halo status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show overlay status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("timer:          %s\n", status.TimerClock)
	fmt.Printf("timer_running:  %v\n", status.TimerRunning)
	fmt.Printf("timer_finished: %v\n", status.TimerFinished)
	if status.Description != "" {
		fmt.Printf("description:    %s\n", status.Description)
	}
	fmt.Printf("radius:         %.1f\n", status.Radius)
	fmt.Printf("expanded:       %v\n", status.Expanded)
	fmt.Printf("dragging:       %v\n", status.Dragging)
	fmt.Printf("gesture:        %s\n", status.Gesture)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runFlash(args []string) int {
	fs := flag.NewFlagSet("flash", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	count := fs.Int("count", 1, "Number of flashes to request")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halo flash [--count N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the window manager to flash the overlay's taskbar entry.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient()
	if err := client.Flash(*count); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printTimerUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  halo timer set <minutes>")
	fmt.Fprintln(w, "  halo timer start")
	fmt.Fprintln(w, "  halo timer stop")
	fmt.Fprintln(w, "  halo timer reset")
}

func runTimer(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printTimerUsage(os.Stderr)
		return 2
	}

	client := ipc.NewClient()

	switch args[0] {
	case "set":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "timer set requires <minutes>")
			printTimerUsage(os.Stderr)
			return 2
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes <= 0 {
			fmt.Fprintf(os.Stderr, "invalid minutes value: %s\n", args[1])
			return 2
		}
		if err := client.TimerSet(minutes); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "start":
		if err := client.TimerStart(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "stop":
		if err := client.TimerStop(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "reset":
		if err := client.TimerReset(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown timer subcommand: %s\n", args[0])
		printTimerUsage(os.Stderr)
		return 2
	}
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  halo config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  halo config print [--path PATH] [--defaults]")
		fmt.Fprintln(os.Stderr, "  halo config reload")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/halo/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		target := *path
		if target == "" {
			var err error
			target, err = config.DefaultConfigPath()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		if _, err := config.LoadStrict(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/halo/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if *printDefaults {
			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Print(string(data))
			return 0
		}

		var cfg *config.Config
		var warnings []string
		var err error
		if *path == "" {
			cfg, warnings, err = config.Load()
		} else {
			cfg, warnings, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "# warning: %s\n", w)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "reload":
		client := ipc.NewClient()
		if err := client.Reload(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config reloaded")
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halo tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the interactive control panel. Requires a running overlay.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMCP(args []string) int {
	if len(args) == 0 || args[0] != "serve" {
		fmt.Fprintln(os.Stderr, "Usage: halo mcp serve")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(ipc.NewClient())
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
