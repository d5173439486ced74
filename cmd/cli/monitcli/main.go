package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/core-tools/hsu-monit-go/pkg/logging"
	"github.com/core-tools/hsu-monit-go/pkg/logging/zaplog"
	"github.com/core-tools/hsu-monit-go/pkg/monit"
	"github.com/core-tools/hsu-monit-go/pkg/monitcontrol"

	flags "github.com/jessevdk/go-flags"
	"github.com/jhunt/go-ansi"
	"github.com/mattn/go-isatty"
)

type globalOptions struct {
	Config  string `long:"config" short:"c" description:"Configuration file path (YAML)"`
	Verbose bool   `long:"verbose" short:"v" description:"Verbose logging"`
	Format  string `long:"format" short:"f" description:"Output format for reports" choice:"json" choice:"yaml" default:"json"`
}

var opts globalOptions

// exitStatus carries a non-zero exit without an error message
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

type serviceArgs struct {
	Service string `positional-arg-name:"NAME" description:"Service name as defined in the monit configuration"`
}

type verbCommand struct {
	verb monit.Verb
	Args struct {
		Service string `positional-arg-name:"NAME" description:"Service name as defined in the monit configuration" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (c *verbCommand) Execute(args []string) error {
	return execute(monitcontrol.Request{Command: string(c.verb), Service: c.Args.Service})
}

type reportCommand struct {
	report string
	Args   serviceArgs `positional-args:"yes"`
}

func (c *reportCommand) Execute(args []string) error {
	return execute(monitcontrol.Request{Command: c.report, Service: c.Args.Service})
}

type validateConfigCommand struct{}

func (c *validateConfigCommand) Execute(args []string) error {
	if err := monitcontrol.ValidateConfigFile(opts.Config); err != nil {
		return err
	}
	ansi.Fprintf(os.Stdout, "@G{configuration is valid}\n")
	return nil
}

func newParser() *flags.Parser {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)

	verbDescriptions := map[monit.Verb]string{
		monit.VerbStart:     "Start a service via monit",
		monit.VerbStop:      "Stop a service via monit",
		monit.VerbRestart:   "Restart a service via monit",
		monit.VerbMonitor:   "Enable monitoring of a service",
		monit.VerbUnmonitor: "Disable monitoring of a service",
	}
	for _, verb := range monit.ServiceVerbs() {
		description := verbDescriptions[verb]
		mustAddCommand(parser, string(verb), description, description, &verbCommand{verb: verb})
	}

	mustAddCommand(parser, monitcontrol.CommandSummary, "Display a summary from monit",
		"Display a summary from monit, optionally only lines mentioning NAME",
		&reportCommand{report: monitcontrol.CommandSummary})
	mustAddCommand(parser, monitcontrol.CommandStatus, "Display service status from monit",
		"Display attributes of every service, or of service NAME only",
		&reportCommand{report: monitcontrol.CommandStatus})
	mustAddCommand(parser, "validate-config", "Validate the configuration file",
		"Load and validate the configuration file without running monit",
		&validateConfigCommand{})

	return parser
}

func mustAddCommand(parser *flags.Parser, name, short, long string, data interface{}) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}

func execute(request monitcontrol.Request) error {
	config, err := monitcontrol.LoadConfigFromFile(opts.Config)
	if err != nil {
		return err
	}

	logLevel := config.LogLevel
	if opts.Verbose {
		logLevel = "debug"
	}
	zapLogger, err := zaplog.NewZapSprintfLogger(logLevel)
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	logger := logging.NewLogger("[monitcli] ", zapLogger.LogFuncs())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := monitcontrol.Run(ctx, config, request, nil, logger)
	if err != nil {
		return err
	}

	if !result.Available {
		ansi.Fprintf(os.Stderr, "@R{monit binary %s not found}\n", config.Monit.Binary)
		return exitStatus(1)
	}

	out := newOutput(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()), opts.Format)
	if err := out.render(result); err != nil {
		return err
	}

	if !result.Success() {
		return exitStatus(1)
	}
	return nil
}

func main() {
	parser := newParser()

	_, err := parser.Parse()
	if err == nil {
		return
	}

	if flagsErr, ok := err.(*flags.Error); ok {
		if flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	if code, ok := err.(exitStatus); ok {
		os.Exit(int(code))
	}

	ansi.Fprintf(os.Stderr, "@R{error:} %v\n", err)
	os.Exit(1)
}
