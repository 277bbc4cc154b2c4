// demo — a small progress view repainted in place
package main

import (
	"os"
	"time"

	"quill"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func main() {
	width := quill.TerminalWidth(os.Stdout, 80)
	out := quill.Stdout()

	steps := []string{
		"Resolving packages...",
		"Downloading dependencies...",
		"Linking binaries...",
	}

	frame := 0
	for _, step := range steps {
		for tick := 0; tick < 8; tick++ {
			root := buildView(spinnerFrames[frame%len(spinnerFrames)], step, false)
			text, _ := quill.Render(root, width)
			out.Log(text)
			quill.Destroy(root)
			frame++
			time.Sleep(80 * time.Millisecond)
		}
	}

	root := buildView("✓", "Done!", true)
	text, _ := quill.Render(root, width)
	out.Log(text)
	quill.Destroy(root)
	out.Done()
}

func buildView(glyph, status string, done bool) *quill.Node {
	root := quill.NewRoot()

	box := quill.NewBox(quill.Style{
		"borderStyle": "round",
		"borderColor": "cyan",
		"paddingX":    1,
		"width":       40,
	})

	line := quill.NewText(quill.Style{"textWrap": "truncate"})
	mark := quill.NewVirtualText(glyph + " ")
	if done {
		mark.Transform = quill.ColorText("green")
	} else {
		mark.Transform = quill.ColorText("cyan")
	}
	label := quill.NewVirtualText(status)
	quill.AppendChild(line, mark)
	quill.AppendChild(line, label)

	quill.AppendChild(box, line)
	quill.AppendChild(root, box)
	return root
}
