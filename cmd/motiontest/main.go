package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"motion-midi/config"
	"motion-midi/midi"
	"motion-midi/motion"
	"motion-midi/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "ports":
		listPorts()
	case "poll":
		pollPorts()
	case "serial":
		listSerial()
	case "encode":
		encode(args)
	case "decode":
		decode(args)
	case "send":
		sendNote(args)
	case "replay":
		replay(args)
	case "recordings":
		listRecordings()
	case "evdev":
		listInputs()
	case "config":
		writeConfig()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Motion MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  ports                          - List MIDI output ports")
	fmt.Println("  poll                           - Poll for port changes")
	fmt.Println("  serial                         - List serial ports")
	fmt.Println("  encode <note> <velocity>       - Print the on/off packet pair")
	fmt.Println("  decode <5 hex bytes>           - Parse a captured packet")
	fmt.Println("  send <port> [note] [velocity]  - Play one note on a port")
	fmt.Println("  replay <file.csv> [mode]       - Run the engine over a recording")
	fmt.Println("  recordings                     - List saved recordings")
	fmt.Println("  evdev                          - List input devices")
	fmt.Println("  config                         - Write a default config file if missing")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		for i, p := range outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI service is not answering.")
	}
}

func pollPorts() {
	fmt.Println("Polling for port changes every 2 seconds... Ctrl+C to exit.")

	last := ""
	for {
		names := midi.ListOutPorts()
		current := strings.Join(names, ",")
		if current != last {
			fmt.Printf("\n[%s] Port change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Outputs: %v\n", names)
			last = current
		}
		time.Sleep(2 * time.Second)
	}
}

func listSerial() {
	ports, err := midi.ListSerialPorts()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("=== Serial Ports ===")
	for i, p := range ports {
		fmt.Printf("  %d: %s\n", i, p)
	}
}

func parseByte(s string, def uint8) (uint8, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > motion.MaxValue {
		return 0, fmt.Errorf("%q is not a 7-bit value", s)
	}
	return uint8(v), nil
}

func encode(args []string) {
	if len(args) < 2 {
		usage()
		return
	}
	note, err := parseByte(args[0], 0)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	vel, err := parseByte(args[1], 0)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("on:  %s\n", midi.EncodeOn(note, vel))
	fmt.Printf("off: %s\n", midi.EncodeOff(note))
}

func decode(args []string) {
	raw := make([]byte, 0, midi.PacketSize)
	for _, a := range args {
		v, err := strconv.ParseUint(strings.TrimPrefix(a, "0x"), 16, 8)
		if err != nil {
			fmt.Printf("Error: %q is not a hex byte\n", a)
			return
		}
		raw = append(raw, byte(v))
	}
	p, err := midi.DecodePacket(raw)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	kind := "unknown"
	switch p.Status {
	case midi.NoteOn:
		kind = "note on"
	case midi.NoteOff:
		kind = "note off"
	}
	fmt.Printf("%s  %s  note=%d velocity=%d\n", p, kind, p.Data1, p.Data2)
	fmt.Printf("as MIDI: % x\n", []byte(p.Message()))
}

func sendNote(args []string) {
	if len(args) < 1 {
		usage()
		return
	}
	note, vel := midi.MiddleC, uint8(100)
	var err error
	if len(args) > 1 {
		if note, err = parseByte(args[1], note); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}
	if len(args) > 2 {
		if vel, err = parseByte(args[2], vel); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	out, err := gomidi.FindOutPort(args[0])
	if err != nil {
		fmt.Printf("No port matching %q: %v\n", args[0], err)
		return
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	on, off := midi.EncodeOn(note, vel), midi.EncodeOff(note)
	fmt.Printf("Using output: %s\n", out.String())
	fmt.Printf("Sending: %s\n", on)
	if err := send(on.Message()); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(sequencer.DefaultHold)
	fmt.Printf("Sending: %s\n", off)
	if err := send(off.Message()); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(sequencer.DefaultHold)
	fmt.Println("Done!")
}

func replay(args []string) {
	if len(args) < 1 {
		usage()
		return
	}
	mode := sequencer.ModeNone
	if len(args) > 1 {
		m, err := sequencer.ParseMode(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		mode = m
	}

	src, err := motion.LoadReplay(resolveRecording(args[0]), false)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	out := midi.NewLogTransport(os.Stdout, true)
	seq := sequencer.New(src, nil, out, sequencer.Options{
		InitialMode: mode,
		Sleep:       func(time.Duration) {},
	})

	fmt.Printf("Replaying %d samples in %s mode\n", src.Len(), mode)
	for !src.Done() {
		if err := seq.Cycle(); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
	st := seq.Status()
	fmt.Printf("\n%d packets sent, last: %s\n", out.Sent(), sequencer.StatusLine(st))
	fmt.Printf("window %d  avg %.2f  max %.2f\n", st.WindowLen, st.Average, st.Max)
}

func listInputs() {
	nodes, err := motion.ListInputs()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("=== Input Devices ===")
	for _, n := range nodes {
		mark := " "
		if n.Motion {
			mark = "*"
		}
		fmt.Printf(" %s %s  %s\n", mark, n.Path, n.Name)
	}
	fmt.Println("\n* motion sensor node")
}

// resolveRecording falls back to the recordings directory for bare names
func resolveRecording(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	dir, err := motion.RecordingsDir()
	if err != nil {
		return name
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return name
}

func listRecordings() {
	dir, err := motion.RecordingsDir()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	recs, err := motion.ListRecordings(dir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("=== Recordings (%s) ===\n", dir)
	for _, r := range recs {
		fmt.Printf("  %s  %-20s %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.Name, r.Filename)
	}
}

func writeConfig() {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists\n", path)
		return
	}
	if err := config.DefaultConfig().Save(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Wrote %s\n", path)
}
