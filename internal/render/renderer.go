// Package render turns WaveJSON documents into self-contained HTML pages
// that draw the timing diagram with the WaveDrom browser library. Raster
// output is left to external tooling.
package render

import (
	"encoding/json"
	"fmt"
	"os"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<script src="https://cdnjs.cloudflare.com/ajax/libs/wavedrom/3.1.0/skins/%s.js" type="text/javascript"></script>
<script src="https://cdnjs.cloudflare.com/ajax/libs/wavedrom/3.1.0/wavedrom.min.js" type="text/javascript"></script>
</head>
<body onload="WaveDrom.ProcessAll()">
<script type="WaveDrom">
%s
</script>
</body>
</html>
`

// Renderer writes WaveJSON as a WaveDrom HTML page.
type Renderer struct {
	Skin string // WaveDrom skin name, "default" if empty
}

// NewRenderer returns a renderer using the given WaveDrom skin.
func NewRenderer(skin string) *Renderer {
	if skin == "" {
		skin = "default"
	}
	return &Renderer{Skin: skin}
}

// RenderHTML reads a WaveJSON file and writes a standalone HTML page that
// renders it. The input must be valid JSON.
func (r *Renderer) RenderHTML(jsonFile, htmlFile string) error {
	content, err := os.ReadFile(jsonFile)
	if err != nil {
		return fmt.Errorf("reading WaveJSON file: %w", err)
	}
	page, err := r.Page("vcd2image waveform", content)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", jsonFile, err)
	}
	if err := os.WriteFile(htmlFile, []byte(page), 0644); err != nil {
		return fmt.Errorf("writing HTML file: %w", err)
	}
	return nil
}

// Page builds the HTML page around a WaveJSON document, validating the
// document first.
func (r *Renderer) Page(title string, wavejson []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(wavejson, &doc); err != nil {
		return "", fmt.Errorf("invalid WaveJSON: %w", err)
	}
	return fmt.Sprintf(htmlPage, title, r.Skin, wavejson), nil
}
