package config

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"eegview/models"
	"eegview/render"
)

type DriverType string

const (
	Stdin  DriverType = "stdin"
	Serial DriverType = "serial"
	Replay DriverType = "replay"
	Kafka  DriverType = "kafka"
)

type DisplayType string

const (
	Web      DisplayType = "web"
	Window   DisplayType = "window"
	Headless DisplayType = "headless"
)

type Flags struct {
	Driver  DriverType
	Display DisplayType
	Addr    string
	// Width and Height are -1 when the display should pick its own size.
	Width    int
	Height   int
	Channels render.Mask
	Palette  [models.ChannelCount]models.Colour
	LogDir   string
	Config   string
}

type SerialFlags struct {
	SerialPort string
	BaudRate   int
}

type ReplayFlags struct {
	Path      string
	Rate      float64
	Loop      bool
	SkipLines int
}

type KafkaFlags struct {
	Brokers string
	Topic   string
	Group   string
}

const DEFAULT_BAUD_RATE = 115200

var clusteredChannels = regexp.MustCompile(`^-[1-6]{2,}$`)

// splitChannelFlags expands grouped channel flags, -13 becomes -1 -3.
func splitChannelFlags(args []string) []string {
	split := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(split, args[i:]...)
		}
		if !clusteredChannels.MatchString(arg) {
			split = append(split, arg)
			continue
		}
		for _, digit := range arg[1:] {
			split = append(split, "-"+string(digit))
		}
	}
	return split
}

// GetFlags parses the command line, then fills anything not given on it from the defaults file. Parse errors have
// already been reported on output together with the usage text when they are returned.
func GetFlags(name string, args []string, output io.Writer) (*Flags, *SerialFlags, *ReplayFlags, *KafkaFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(output, "usage: %s [-123456] [-w width] [-h height] [flags]\n", name)
		fs.PrintDefaults()
	}

	flags := &Flags{Palette: DefaultPalette}
	var driverStr, displayStr string
	fs.StringVar(&driverStr, "driver", string(Stdin), "input driver: stdin, serial, replay or kafka")
	fs.StringVar(&displayStr, "display", string(Web), "display: web, window or headless")
	fs.StringVar(&flags.Addr, "addr", ":8080", "http listen address for the web display")
	fs.IntVar(&flags.Width, "w", -1, "initial surface width in pixels (default: screen width)")
	fs.IntVar(&flags.Height, "h", -1, "initial surface height in pixels (default: screen height)")
	fs.StringVar(&flags.LogDir, "log-dir", "logs", "directory for raw input logs, empty to disable")
	fs.StringVar(&flags.Config, "config", "", "defaults file (default: ~/.eegview)")

	var channels [models.ChannelCount]bool
	for i := range channels {
		fs.BoolVar(&channels[i], strconv.Itoa(i+1), false, fmt.Sprintf("show channel %d", i+1))
	}

	serial := &SerialFlags{}
	fs.StringVar(&serial.SerialPort, "serial-port", "auto", "serial device path or 'auto'")
	fs.IntVar(&serial.BaudRate, "baud", DEFAULT_BAUD_RATE, "baud rate")

	replay := &ReplayFlags{}
	fs.StringVar(&replay.Path, "replay", "", "path to a raw log to replay")
	fs.Float64Var(&replay.Rate, "replay-rate", 250, "replay rate in lines per second (0 = as fast as possible)")
	fs.BoolVar(&replay.Loop, "replay-loop", false, "loop replay at EOF")
	fs.IntVar(&replay.SkipLines, "replay-skip-lines", 0, "skips X amount of lines from start")

	kafka := &KafkaFlags{}
	fs.StringVar(&kafka.Brokers, "kafka-brokers", "localhost:9092", "comma separated kafka seed brokers")
	fs.StringVar(&kafka.Topic, "kafka-topic", "eeg", "kafka topic carrying records")
	fs.StringVar(&kafka.Group, "kafka-group", "eegview", "kafka consumer group")

	if err := fs.Parse(splitChannelFlags(args)); err != nil {
		return nil, nil, nil, nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected argument %q", fs.Arg(0))
		_, _ = fmt.Fprintln(output, err)
		fs.Usage()
		return nil, nil, nil, nil, err
	}

	for i, on := range channels {
		if on {
			flags.Channels = flags.Channels.Set(i)
		}
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	d, err := loadDefaults(flags.Config)
	if err != nil {
		_, _ = fmt.Fprintln(output, err)
		return nil, nil, nil, nil, err
	}
	if d != nil {
		d.apply(explicit, map[string]*string{
			"driver":        &driverStr,
			"display":       &displayStr,
			"addr":          &flags.Addr,
			"serial-port":   &serial.SerialPort,
			"kafka-brokers": &kafka.Brokers,
			"kafka-topic":   &kafka.Topic,
			"kafka-group":   &kafka.Group,
		})
		if err := d.applyPalette(&flags.Palette); err != nil {
			_, _ = fmt.Fprintln(output, err)
			return nil, nil, nil, nil, err
		}
	}

	flags.Driver = DriverType(driverStr)
	flags.Display = DisplayType(displayStr)

	return flags, serial, replay, kafka, nil
}
