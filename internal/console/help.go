package console

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	//go:embed assets/logo.txt
	banner string
	//go:embed assets/commands.txt
	commands string
	//go:embed assets/keymaps.txt
	keymaps string
)

var (
	bannerColor  = color.New(color.FgBlue)
	uriColor     = color.New(color.FgCyan)
	configColor  = color.New(color.FgBlue)
	commandColor = color.New(color.FgYellow)
	keymapColor  = color.New(color.FgGreen)
	infoColor    = color.New(color.FgBlue)
	errorColor   = color.New(color.FgRed)
)

func printBanner(w io.Writer) {
	fmt.Fprintf(w, "%s\n\n", bannerColor.Sprint(strings.TrimRight(banner, "\n")))
}

func printHelp(w io.Writer, dbURI string, cfg SessionConfig) {
	config := fmt.Sprintf(` config
   output format                  %s
   output path                    %s
   write output                   %s
   page output                    %s`,
		cfg.Format, cfg.OutputDir, onOff(cfg.Write), onOff(cfg.Page))

	fmt.Fprintf(w, " connected to: %s\n\n%s\n\n%s\n%s\n",
		uriColor.Sprint(dbURI),
		configColor.Sprint(config),
		commandColor.Sprint(strings.TrimRight(commands, "\n")),
		keymapColor.Sprint(strings.TrimRight(keymaps, "\n")),
	)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
