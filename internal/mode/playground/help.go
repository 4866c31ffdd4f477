package playground

import (
	"github.com/charmbracelet/glamour"

	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/ui/styles"
)

const helpMarkdown = `# stylet playground

Type into the buffer and watch it restyle as the tokenizer catches up.

## Keys

| Key | Action |
| --- | --- |
| ctrl+t / ctrl+y | next / previous theme |
| ctrl+p | theme picker |
| ctrl+l | cycle sample language |
| ctrl+g | toggle this help |
| esc | close overlay |
| ctrl+c | quit |

Arrow keys move the cursor, PgUp/PgDn and the mouse wheel scroll.
`

// glamourStyle removes document margins so the overlay border hugs the
// content.
const glamourStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// renderHelp renders the help markdown at the given width. On renderer
// failure it degrades to the raw markdown text.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(glamourStyle)),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, rerr := r.Render(helpMarkdown); rerr == nil {
			return styles.HelpOverlay.Render(out)
		} else {
			err = rerr
		}
	}
	log.Warn(log.CatUI, "help markdown rendering failed", "error", err)

	return styles.HelpOverlay.Render(helpMarkdown)
}
