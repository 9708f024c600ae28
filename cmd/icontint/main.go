package main

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khoshbin/icontint/provider"
	"github.com/khoshbin/icontint/theme"
)

var (
	palettePath string
	outPath     string
	width       int
	height      int
	assetsDir   string
	appVersion  = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "icontint",
	Short: "Themed SVG icon renderer",
	Long:  "Icontint substitutes theme colors into the class markers of SVG icons and rasters the result to PNG.",
}

var renderCmd = &cobra.Command{
	Use:   "render <icon.svg>",
	Short: "Render one themed icon to PNG",
	Args:  cobra.ExactArgs(1),
	Run:   runRender,
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the palette color names and values",
	Run:   runColors,
}

func init() {
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&palettePath, "palette", "", "JSON palette file (default: built-in palette)")

	renderCmd.Flags().StringVar(&outPath, "out", "", "Output PNG path (default: the icon name with a .png extension)")
	renderCmd.Flags().IntVar(&width, "width", 0, "Output width in pixels (0 keeps the natural size)")
	renderCmd.Flags().IntVar(&height, "height", 0, "Output height in pixels (0 keeps the aspect ratio)")
	renderCmd.Flags().StringVar(&assetsDir, "assets", "", "Asset directory (default: the icon's directory)")
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(colorsCmd)
}

func loadPalette() theme.Palette {
	if palettePath == "" {
		return theme.Default()
	}
	colors, err := theme.Load(palettePath)
	if err != nil {
		log.Fatalf("load palette: %v", err)
	}
	return colors
}

func runRender(cmd *cobra.Command, args []string) {
	icon := args[0]
	dir, name := assetsDir, icon
	if dir == "" {
		dir = filepath.Dir(icon)
		name = filepath.Base(icon)
	}

	p := provider.New(os.DirFS(dir), loadPalette(), provider.WithPathPrefix(""))
	img, err := p.RenderSized(name, width, height)
	if err != nil {
		log.Fatalf("render %s: %v", icon, err)
	}

	out := outPath
	if out == "" {
		out = strings.TrimSuffix(icon, filepath.Ext(icon)) + ".png"
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("create %s: %v", out, err)
	}
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode %s: %v", out, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", out, err)
	}
	fmt.Printf("Rendered %s -> %s (%dx%d)\n", icon, out, img.Bounds().Dx(), img.Bounds().Dy())
}

func runColors(cmd *cobra.Command, args []string) {
	colors := loadPalette()
	for _, name := range colors.Names() {
		c, _ := colors.Lookup(name)
		fmt.Printf("%-12s %s\n", name, c.Hex())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
