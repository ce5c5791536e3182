// Package interactive provides a readline-based debug console for the
// device-core host binary: a developer can trigger a publish, inspect
// session counters, or force a disconnect without driving the cloud
// session itself.
package interactive

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/cnxtech/device-os/pkg/core"
)

// Device runs the interactive command loop against a live Core.
type Device struct {
	core    *core.Core
	closeFn func()
	rl      *readline.Instance
}

// New creates an interactive shell for core. closeFn is invoked by the
// "disconnect" command to tear down the underlying transport, which
// causes the host's Tick loop to exit on its next iteration.
func New(c *core.Core, closeFn func()) *Device {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "device-core> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		// Readline failing to attach to the terminal (e.g. not a TTY)
		// disables the shell rather than crashing the host binary.
		return &Device{core: c, closeFn: closeFn}
	}
	return &Device{core: c, closeFn: closeFn, rl: rl}
}

// Run starts the interactive command loop. It returns when the user
// exits the shell or the readline instance cannot be used.
func (d *Device) Run() {
	if d.rl == nil {
		return
	}
	defer d.rl.Close()

	d.printHelp()
	for {
		line, err := d.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			d.printHelp()
		case "status":
			d.cmdStatus()
		case "vars":
			d.cmdVars()
		case "funcs":
			d.cmdFuncs()
		case "read":
			d.cmdRead(args)
		case "call":
			d.cmdCall(args)
		case "publish", "pub":
			d.cmdPublish(args)
		case "disconnect", "kick":
			fmt.Fprintln(d.rl.Stdout(), "disconnecting...")
			d.closeFn()
		case "quit", "exit", "q":
			return
		default:
			fmt.Fprintf(d.rl.Stdout(), "unknown command: %s (type 'help')\n", cmd)
		}
	}
}

func (d *Device) printHelp() {
	fmt.Fprintln(d.rl.Stdout(), `
device-core commands:
  status              - show session counters
  vars                - list descriptor variables
  funcs               - list descriptor functions
  read <key>          - read a variable's current value
  call <key> [arg]    - call a function with an optional argument
  publish <name> [data] - publish a POST event
  disconnect          - close the transport, ending the session
  quit                - exit the shell`)
}

func (d *Device) cmdStatus() {
	s := d.core.Session()
	fmt.Fprintf(d.rl.Stdout(), "message id: %d  token: %d  updating: %v  subscriptions: %d\n",
		s.MessageIDValue(), s.TokenValue(), s.Updating(), d.core.Subscriptions().Count())
}

func (d *Device) cmdVars() {
	desc := d.core.Session().Descriptor()
	for i := 0; i < desc.NumVariables(); i++ {
		key := desc.VariableKey(i)
		fmt.Fprintf(d.rl.Stdout(), "  %s (%s)\n", key, desc.VariableType(key))
	}
}

func (d *Device) cmdFuncs() {
	desc := d.core.Session().Descriptor()
	for i := 0; i < desc.NumFunctions(); i++ {
		fmt.Fprintf(d.rl.Stdout(), "  %s\n", desc.FunctionKey(i))
	}
}

func (d *Device) cmdRead(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(d.rl.Stdout(), "usage: read <key>")
		return
	}
	v, ok := d.core.Session().Descriptor().GetVariable(args[0])
	if !ok {
		fmt.Fprintf(d.rl.Stdout(), "no such variable: %s\n", args[0])
		return
	}
	fmt.Fprintf(d.rl.Stdout(), "%v\n", v)
}

func (d *Device) cmdCall(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(d.rl.Stdout(), "usage: call <key> [arg]")
		return
	}
	var arg string
	if len(args) > 1 {
		arg = args[1]
	}
	ret, err := d.core.Session().Descriptor().CallFunction(args[0], arg)
	if err != nil {
		fmt.Fprintf(d.rl.Stdout(), "error: %v\n", err)
		return
	}
	fmt.Fprintf(d.rl.Stdout(), "returned %d\n", ret)
}

func (d *Device) cmdPublish(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(d.rl.Stdout(), "usage: publish <name> [data]")
		return
	}
	var data []byte
	if len(args) > 1 {
		data = []byte(strings.Join(args[1:], " "))
	}
	if err := d.core.SendEvent(args[0], data, 60, 0); err != nil {
		fmt.Fprintf(d.rl.Stdout(), "error: %v\n", err)
		return
	}
	fmt.Fprintln(d.rl.Stdout(), "published")
}
