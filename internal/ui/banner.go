package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const bannerText = `
██████╗ ███████╗██╗   ██╗    ███████╗ █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗
██╔══██╗██╔════╝██║   ██║    ██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝
██║  ██║█████╗  ██║   ██║    ███████╗███████║██║     ███████║██████╔╝ ╚████╔╝
██║  ██║██╔══╝  ╚██╗ ██╔╝    ╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝
██████╔╝███████╗ ╚████╔╝     ███████║██║  ██║███████╗██║  ██║██║  ██║   ██║
╚═════╝ ╚══════╝  ╚═══╝      ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
 HeadHunter + SuperJob salary statistics
`

// Salary brackets in roubles used for colouring
const (
	highSalary   = 300000
	upperSalary  = 200000
	middleSalary = 100000
)

// ColorizeText applies a random colour gradient to the input text
func ColorizeText(text string) string {
	source := rand.NewSource(time.Now().UnixNano())
	random := rand.New(source)

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	firstPoint := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	strs := strings.Split(text, "")
	half := len(strs) / 2
	if half == 0 {
		half = 1
	}

	var coloredText strings.Builder
	for i, s := range strs {
		coloredText.WriteString(startColor.Fade(0, float32(len(strs)), float32(i%half), firstPoint).Sprint(s))
	}

	return coloredText.String()
}

// PrintBanner writes the application banner to w
func PrintBanner(w io.Writer, silence bool) {
	if !silence {
		fmt.Fprintln(w, ColorizeText(bannerText))
	}
}

// ColorizeSalary colours text according to the salary bracket of value
func ColorizeSalary(value int, text string) string {
	switch {
	case value <= 0:
		return pterm.Red(text)
	case value >= highSalary:
		return pterm.Green(text)
	case value >= upperSalary:
		return pterm.LightGreen(text)
	case value >= middleSalary:
		return pterm.Yellow(text)
	default:
		return pterm.Red(text)
	}
}
